package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyubolp/py2uml/config"
)

func setFlags(t *testing.T, workersValue int, formatValue string) {
	t.Helper()

	savedWorkers, savedFormat := workers, format
	t.Cleanup(func() {
		workers, format = savedWorkers, savedFormat
	})

	workers = workersValue
	format = formatValue
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 6

	// 1. 命令行未指定时配置文件生效
	setFlags(t, 0, FormatPlantUML)
	assert.Equal(t, 6, effectiveWorkers(cfg))

	// 2. 命令行指定优先于配置文件
	setFlags(t, 2, FormatPlantUML)
	assert.Equal(t, 2, effectiveWorkers(cfg))

	// 3. 两边都未指定时回落到 CPU 数
	setFlags(t, 0, FormatPlantUML)
	assert.Equal(t, runtime.NumCPU(), effectiveWorkers(config.Default()))
}

func TestValidatePaths(t *testing.T) {
	root := t.TempDir()
	setFlags(t, 0, FormatPlantUML)

	assert.NoError(t, validatePaths(root, "out.puml"))
	assert.ErrorContains(t, validatePaths(root, "out.txt"), "must have .puml extension")
	assert.ErrorContains(t, validatePaths(root+"/missing", "out.puml"), "does not exist")
}

func TestValidatePaths_FormatExtension(t *testing.T) {
	root := t.TempDir()
	setFlags(t, 0, FormatJSONL)

	assert.NoError(t, validatePaths(root, "out.jsonl"))
	assert.ErrorContains(t, validatePaths(root, "out.puml"), "must have .jsonl extension")
}

func TestValidatePaths_UnknownFormat(t *testing.T) {
	root := t.TempDir()
	setFlags(t, 0, "xyz")

	err := validatePaths(root, "out.xyz")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown format 'xyz'")
}
