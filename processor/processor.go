package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lyubolp/py2uml/collector"
	"github.com/lyubolp/py2uml/graph"
	"github.com/lyubolp/py2uml/logging"
	"github.com/lyubolp/py2uml/model"
	"github.com/lyubolp/py2uml/parser"
	"github.com/lyubolp/py2uml/resolver"
)

// SkippedFile 记录一个被跳过的文件及原因，整个运行永不因此中止
type SkippedFile struct {
	Path   string
	Reason string
}

// FileProcessor 负责并发处理文件列表。
// 各 worker 独立解析文件并产出该文件的提取结果，
// 图/模型列表的合并由单一顺序阶段完成（按文件路径排序），
// 保证节点编号和包树子节点顺序在多次运行间可复现。
type FileProcessor struct {
	Workers int // 并发协程数量

	log *logging.Logger
}

// NewFileProcessor 创建 FileProcessor 实例
func NewFileProcessor(workers int) *FileProcessor {
	if workers <= 0 {
		workers = 4 // 默认并发数
	}
	return &FileProcessor{
		Workers: workers,
		log:     logging.NewLogger("processor"),
	}
}

// --- 依赖图模式 (Dependency Graph Mode) ---

// fileDeps 是单个文件的独立提取结果
type fileDeps struct {
	path    string
	module  model.PythonModule
	imports []model.PythonModule
	skip    *SkippedFile
}

// BuildDependencyGraph 为每个源文件建立自身模块节点，解析其导入并连边。
// 重复节点和重复边静默容忍（同一依赖可能被多次导入）；
// 不做环检测，也不抑制自环。
func (fp *FileProcessor) BuildDependencyGraph(ctx context.Context, root string, filePaths []string) (*graph.Graph[model.PythonModule], []SkippedFile, error) {
	results := make([]*fileDeps, 0, len(filePaths))

	collect := func(res interface{}) {
		results = append(results, res.(*fileDeps))
	}
	if err := fp.runWorkers(ctx, filePaths, collect, func(p parser.Parser, path string) interface{} {
		return fp.extractFileDeps(p, root, path)
	}); err != nil {
		return nil, nil, err
	}

	// 单一顺序合并阶段：按路径排序后写图
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	g := graph.New[model.PythonModule]()
	var skipped []SkippedFile

	for _, res := range results {
		if res.skip != nil {
			skipped = append(skipped, *res.skip)
			continue
		}

		g.AddNode(res.module)

		for _, dep := range res.imports {
			if !g.HasNode(dep) {
				g.AddNode(dep)
			}
			if status := g.AddEdge(res.module, dep); status == graph.Duplicate {
				fp.log.Debug("duplicate dependency %s -> %s", res.module.Name, dep.Name)
			}
		}
	}

	return g, skipped, nil
}

func (fp *FileProcessor) extractFileDeps(p parser.Parser, root, filePath string) *fileDeps {
	module, err := moduleForFile(root, filePath)
	if err != nil {
		return &fileDeps{path: filePath, skip: &SkippedFile{Path: filePath, Reason: err.Error()}}
	}

	rootNode, sourceBytes, err := p.ParseFile(filePath)
	if err != nil {
		fp.log.Warn("skipping %s: %v", filePath, err)
		return &fileDeps{path: filePath, skip: &SkippedFile{Path: filePath, Reason: err.Error()}}
	}

	res := &fileDeps{path: filePath, module: module}

	imports := resolver.ExtractImports(rootNode, sourceBytes)
	r := resolver.NewImportResolver(root)
	for _, importPath := range imports {
		if dep, ok := r.Resolve(importPath); ok {
			res.imports = append(res.imports, dep)
		}
	}

	return res
}

// moduleForFile 由文件路径导出其自身模块：
// 名字是文件名去扩展名，包路径是相对根目录的目录段。
func moduleForFile(root, filePath string) (model.PythonModule, error) {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return model.PythonModule{}, fmt.Errorf("failed to relativize %s: %w", filePath, err)
	}

	name := strings.TrimSuffix(filepath.Base(rel), sourceExt)

	var packages []string
	if dir := filepath.Dir(rel); dir != "." {
		packages = strings.Split(dir, string(filepath.Separator))
	}

	return model.NewPythonModule(name, packages), nil
}

// --- 类图模式 (Class Diagram Mode) ---

type fileClasses struct {
	path   string
	models []model.ClassModel
	skip   *SkippedFile
}

// CollectClassModels 从每个源文件提取顶层类定义的 ClassModel。
// 不同文件里的同名类各自独立建模，不做合并。
func (fp *FileProcessor) CollectClassModels(ctx context.Context, filePaths []string) ([]model.ClassModel, []SkippedFile, error) {
	results := make([]*fileClasses, 0, len(filePaths))

	collect := func(res interface{}) {
		results = append(results, res.(*fileClasses))
	}
	if err := fp.runWorkers(ctx, filePaths, collect, fp.extractFileClasses); err != nil {
		return nil, nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	var models []model.ClassModel
	var skipped []SkippedFile
	for _, res := range results {
		if res.skip != nil {
			skipped = append(skipped, *res.skip)
			continue
		}
		models = append(models, res.models...)
	}

	return models, skipped, nil
}

func (fp *FileProcessor) extractFileClasses(p parser.Parser, filePath string) interface{} {
	rootNode, sourceBytes, err := p.ParseFile(filePath)
	if err != nil {
		fp.log.Warn("skipping %s: %v", filePath, err)
		return &fileClasses{path: filePath, skip: &SkippedFile{Path: filePath, Reason: err.Error()}}
	}

	col := collector.NewCollector()
	return &fileClasses{path: filePath, models: col.CollectClasses(rootNode, sourceBytes)}
}

// --- Worker 池 (Worker Pool) ---

type extractFunc func(p parser.Parser, filePath string) interface{}

// runWorkers 启动 worker 并发处理文件；每个 worker 持有自己的 parser。
// 提取结果通过 channel 汇集，由调用方的 collect 顺序消费。
func (fp *FileProcessor) runWorkers(ctx context.Context, filePaths []string, collect func(interface{}), extract extractFunc) error {
	filesChan := make(chan string, len(filePaths))
	resultsChan := make(chan interface{}, len(filePaths))
	errChan := make(chan error, fp.Workers)
	var wg sync.WaitGroup

	for i := 0; i < fp.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			p, err := parser.NewParser(model.LangPython)
			if err != nil {
				errChan <- fmt.Errorf("failed to create parser: %w", err)
				return
			}
			defer p.Close()

			for filePath := range filesChan {
				select {
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				default:
				}

				resultsChan <- extract(p, filePath)
			}
		}()
	}

	for _, path := range filePaths {
		filesChan <- path
	}
	close(filesChan)

	go func() {
		wg.Wait()
		close(resultsChan)
		close(errChan)
	}()

	for res := range resultsChan {
		collect(res)
	}

	if err := <-errChan; err != nil {
		return err
	}
	return nil
}
