package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyubolp/py2uml/config"
	"github.com/lyubolp/py2uml/logging"
	"github.com/lyubolp/py2uml/output"
	"github.com/lyubolp/py2uml/processor"
)

// 输出格式
const (
	FormatPlantUML = "puml"
	FormatJSONL    = "jsonl"
)

var (
	configPath string
	workers    int
	format     string
)

var log = logging.NewLogger("cli")

var rootCmd = &cobra.Command{
	Use:   "py2uml",
	Short: "Generate PlantUML diagrams for Python projects",
	Long: `py2uml derives structural models of a Python codebase and renders them as
diagram markup: per-class shape (class diagram mode) or inter-module import
dependencies grouped into packages (dependency diagram mode).`,
	SilenceUsage: true,
}

var classCmd = &cobra.Command{
	Use:   "class <input-dir> <output-file>",
	Short: "Generate a class diagram from the project's class definitions",
	Args:  cobra.ExactArgs(2),
	RunE:  runClassDiagram,
}

var depsCmd = &cobra.Command{
	Use:   "deps <input-dir> <output-file>",
	Short: "Generate a dependency diagram from the project's imports",
	Args:  cobra.ExactArgs(2),
	RunE:  runDependencyDiagram,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of concurrent file workers (0 = config file, then CPU count)")
	rootCmd.PersistentFlags().StringVar(&format, "format", FormatPlantUML, "output format (puml, jsonl)")

	rootCmd.AddCommand(classCmd)
	rootCmd.AddCommand(depsCmd)
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}

func runClassDiagram(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validatePaths(inputPath, outputPath); err != nil {
		return err
	}

	files, err := processor.DiscoverFiles(inputPath, cfg.Ignore)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	log.Info("analyzing %d files with %d workers", len(files), effectiveWorkers(cfg))

	proc := processor.NewFileProcessor(effectiveWorkers(cfg))
	models, skipped, err := proc.CollectClassModels(context.Background(), files)
	if err != nil {
		return err
	}
	reportSkipped(skipped)

	if format == FormatJSONL {
		return writeJSONL(outputPath, func(f *os.File) error {
			_, err := output.ExportClassModels(f, models)
			return err
		})
	}
	return writeLines(outputPath, output.GenerateClassDiagram(models))
}

func runDependencyDiagram(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validatePaths(inputPath, outputPath); err != nil {
		return err
	}

	files, err := processor.DiscoverFiles(inputPath, cfg.Ignore)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	log.Info("analyzing %d files with %d workers", len(files), effectiveWorkers(cfg))

	proc := processor.NewFileProcessor(effectiveWorkers(cfg))
	g, skipped, err := proc.BuildDependencyGraph(context.Background(), inputPath, files)
	if err != nil {
		return err
	}
	reportSkipped(skipped)

	if format == FormatJSONL {
		return writeJSONL(outputPath, func(f *os.File) error {
			_, err := output.ExportDependencies(f, g)
			return err
		})
	}

	tree := output.BuildPackageTree(g, treeRootName(cfg, inputPath))
	return writeLines(outputPath, output.GenerateDependencyDiagram(g, tree))
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// effectiveWorkers 取并发数：命令行指定优先于配置文件，都未指定时用 CPU 数
func effectiveWorkers(cfg *config.Config) int {
	if workers > 0 {
		return workers
	}
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.NumCPU()
}

// treeRootName 包树根节点名：配置优先，否则用项目目录名
func treeRootName(cfg *config.Config, inputPath string) string {
	if cfg.ProjectName != "" {
		return cfg.ProjectName
	}
	return filepath.Base(filepath.Clean(inputPath))
}

// validatePaths 检查输出格式和输入/输出路径。
// 项目根不存在或不是目录是唯一中止运行的环境级错误；
// 格式必须是已知格式之一，输出扩展名必须与格式匹配。
func validatePaths(inputPath, outputPath string) error {
	if format != FormatPlantUML && format != FormatJSONL {
		return fmt.Errorf("unknown format '%s' (supported: %s, %s)", format, FormatPlantUML, FormatJSONL)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input path '%s' does not exist", inputPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path '%s' is not a directory", inputPath)
	}

	wantExt := "." + format
	if !strings.HasSuffix(outputPath, wantExt) {
		return fmt.Errorf("output path '%s' must have %s extension", outputPath, wantExt)
	}
	return nil
}

func reportSkipped(skipped []processor.SkippedFile) {
	for _, s := range skipped {
		log.Warn("skipped %s: %s", s.Path, s.Reason)
	}
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("failed to write to output file: %w", err)
		}
	}
	return nil
}

func writeJSONL(path string, export func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := export(f); err != nil {
		return fmt.Errorf("failed to write to output file: %w", err)
	}
	return nil
}
