package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/lyubolp/py2uml/model"
)

func init() {
	// 注册 Tree-sitter Python 语言对象
	model.RegisterLanguage(model.LangPython, sitter.NewLanguage(tree_sitter_python.Language()))
}

// Parser 定义了所有语言解析器的通用能力
type Parser interface {
	// Parse 解析一段源码，返回 AST 根节点
	Parse(source []byte) (*sitter.Node, error)
	// ParseFile 读取文件内容并解析，返回 AST 根节点和源码字节
	ParseFile(filePath string) (*sitter.Node, *[]byte, error)
	// Close 释放 Tree-sitter 内部资源
	Close()
}

// TreeSitterParser 是 Parser 的具体实现。
// 只持有最近一次解析的树：返回的节点在下一次 Parse/ParseFile 或 Close 之前
// 有效，调用方必须在此之前消费完毕（逐文件处理天然满足该约束）。
type TreeSitterParser struct {
	Language model.Language
	tsParser *sitter.Parser
	tree     *sitter.Tree
}

// NewParser 创建一个新的 TreeSitterParser 实例
func NewParser(lang model.Language) (*TreeSitterParser, error) {
	tsLang, err := model.GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &TreeSitterParser{
		Language: lang,
		tsParser: tsParser,
	}, nil
}

// Parse 实现了 Parser 接口。
// Tree-sitter 对语法错误是容忍的，会产出带 ERROR 节点的树；
// 这里把含错误的树判定为解析失败，调用方按文件粒度跳过。
func (p *TreeSitterParser) Parse(source []byte) (*sitter.Node, error) {
	// 上一棵树在这里释放，避免长批次运行时内存随文件数增长
	if p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}

	tree := p.tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("source contains syntax errors")
	}

	p.tree = tree
	return root, nil
}

// ParseFile 实现了 Parser 接口
func (p *TreeSitterParser) ParseFile(filePath string) (*sitter.Node, *[]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	root, err := p.Parse(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}

	return root, &content, nil
}

// Close 释放 Tree-sitter 内部资源
func (p *TreeSitterParser) Close() {
	if p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}

	if p.tsParser != nil {
		p.tsParser.Close()
	}
}
