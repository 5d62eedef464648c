package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是一次生成运行的配置
type Config struct {
	// Ignore 是路径忽略子串列表，命中任一子串的文件不参与扫描
	Ignore []string `yaml:"ignore"`
	// Workers 是并发解析文件的协程数量，0 表示使用默认值
	Workers int `yaml:"workers"`
	// ProjectName 是包树合成根节点的名字，空串表示用项目目录名
	ProjectName string `yaml:"project_name"`
}

// DefaultIgnore 是默认的路径忽略子串
func DefaultIgnore() []string {
	return []string{".venv", "tests", "docs", "__init__.py"}
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Ignore: DefaultIgnore(),
	}
}

// Load 从 YAML 文件加载配置，缺省字段回落到默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return nil
}
