package resolver

import (
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lyubolp/py2uml/logging"
	"github.com/lyubolp/py2uml/model"
)

// sourceExt 是被扫描源文件的扩展名
const sourceExt = ".py"

// importSeparator 是导入路径段之间的分隔符
const importSeparator = "."

// ExtractImports 收集模块顶层的导入语句，统一规范化为点分路径。
// `import a.b.c` 的目标就是点分路径本身；`from a.b import c` 按每个导入名
// 展开为 `a.b.c`。结果保持源码顺序，同一依赖重复导入时原样保留
// （建图阶段靠边去重吸收）。
func ExtractImports(rootNode *sitter.Node, sourceBytes *[]byte) []string {
	var imports []string

	for i := 0; i < int(rootNode.NamedChildCount()); i++ {
		child := rootNode.NamedChild(uint(i))
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "import_statement":
			imports = append(imports, extractImportStatement(child, *sourceBytes)...)
		case "import_from_statement":
			imports = append(imports, extractImportFromStatement(child, *sourceBytes)...)
		}
	}

	return imports
}

func extractImportStatement(node *sitter.Node, source []byte) []string {
	var paths []string

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			paths = append(paths, child.Utf8Text(source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				paths = append(paths, name.Utf8Text(source))
			}
		}
	}

	return paths
}

func extractImportFromStatement(node *sitter.Node, source []byte) []string {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return nil
	}

	var module string
	switch moduleNode.Kind() {
	case "dotted_name":
		module = moduleNode.Utf8Text(source)
	case "relative_import":
		// `from .pkg import x` 按 pkg 处理；`from . import x` 没有模块名，整句忽略
		for i := 0; i < int(moduleNode.NamedChildCount()); i++ {
			if sub := moduleNode.NamedChild(uint(i)); sub != nil && sub.Kind() == "dotted_name" {
				module = sub.Utf8Text(source)
				break
			}
		}
		if module == "" {
			return nil
		}
	default:
		return nil
	}

	var paths []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil || child.StartByte() == moduleNode.StartByte() {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			paths = append(paths, module+importSeparator+child.Utf8Text(source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				paths = append(paths, module+importSeparator+name.Utf8Text(source))
			}
		case "wildcard_import":
			paths = append(paths, module+importSeparator+"*")
		}
	}

	return paths
}

// ImportResolver 判定导入路径是否项目内部并求其规范内部路径
type ImportResolver struct {
	root string
	log  *logging.Logger
}

func NewImportResolver(root string) *ImportResolver {
	return &ImportResolver{
		root: root,
		log:  logging.NewLogger("resolver"),
	}
}

// SplitImport 把点分导入路径拆成路径段
func SplitImport(importPath string) []string {
	return strings.Split(importPath, importSeparator)
}

// IsInternal 判定导入是否项目内部：当且仅当项目根目录下直接存在
// 以首段命名的目录。
// 注意与 Canonicalize 的判据不一致：本测试只认目录，而规范化游走
// 也接受模块文件，因此根目录下的单文件模块（root/x.py）会被判为外部。
// 这一行为沿自参照实现，保留而非悄悄修正。
func (r *ImportResolver) IsInternal(importPath string) bool {
	parts := SplitImport(importPath)
	if len(parts) == 0 {
		return false
	}

	info, err := os.Stat(filepath.Join(r.root, parts[0]))
	return err == nil && info.IsDir()
}

// Canonicalize 从项目根出发沿路径段从左到右游走：
// 累积路径是既有目录、或者加上 ".py" 后是既有文件时接受该段，
// 否则停止。被接受的前缀（点号连接）即规范内部模块路径。
func (r *ImportResolver) Canonicalize(importPath string) string {
	current := r.root
	var accepted []string

	for _, part := range SplitImport(importPath) {
		asFile := filepath.Join(current, part+sourceExt)
		current = filepath.Join(current, part)

		if !isDir(current) && !isFile(asFile) {
			break
		}
		accepted = append(accepted, part)
	}

	return strings.Join(accepted, importSeparator)
}

// Resolve 对单个导入路径做两段判定。
// 外部导入和规范路径为空的导入被丢弃（ok 为 false）；
// 结果只依赖导入串和根目录下的文件系统布局，重复解析结果一致。
func (r *ImportResolver) Resolve(importPath string) (model.PythonModule, bool) {
	if !r.IsInternal(importPath) {
		r.log.Debug("discarding external import %s", importPath)
		return model.PythonModule{}, false
	}

	canonical := r.Canonicalize(importPath)
	if canonical == "" {
		r.log.Debug("import %s has no canonical internal path", importPath)
		return model.PythonModule{}, false
	}

	parts := SplitImport(canonical)
	name := parts[len(parts)-1]
	if name == "" {
		return model.PythonModule{}, false
	}

	return model.NewPythonModule(name, parts[:len(parts)-1]), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
