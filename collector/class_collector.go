package collector

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lyubolp/py2uml/logging"
	"github.com/lyubolp/py2uml/model"
)

// constructorName 是被视作构造方法的方法名，其方法体是属性扫描的唯一来源
const constructorName = "__init__"

// Collector 从单个文件的 AST 中收集顶层类定义，产出 ClassModel。
// 嵌套类不单独建模（与属性扫描的下降规则无关）。
type Collector struct {
	log *logging.Logger
}

func NewCollector() *Collector {
	return &Collector{log: logging.NewLogger("collector")}
}

// CollectClasses 遍历模块顶层语句，为每个类定义构建一个 ClassModel。
// 被装饰的类（decorated_definition 包裹）同样计入。
func (c *Collector) CollectClasses(rootNode *sitter.Node, sourceBytes *[]byte) []model.ClassModel {
	var models []model.ClassModel

	for i := 0; i < int(rootNode.NamedChildCount()); i++ {
		child := rootNode.NamedChild(uint(i))
		if child == nil {
			continue
		}

		classNode := c.unwrapClassDefinition(child)
		if classNode == nil {
			continue
		}

		models = append(models, c.buildClassModel(classNode, *sourceBytes))
	}

	return models
}

// unwrapClassDefinition 识别类定义节点，必要时剥掉 decorated_definition 外壳
func (c *Collector) unwrapClassDefinition(node *sitter.Node) *sitter.Node {
	switch node.Kind() {
	case "class_definition":
		return node
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil && def.Kind() == "class_definition" {
			return def
		}
	}
	return nil
}

func (c *Collector) buildClassModel(classNode *sitter.Node, source []byte) model.ClassModel {
	name := ""
	if nameNode := classNode.ChildByFieldName("name"); nameNode != nil {
		name = c.getNodeContent(nameNode, source)
	}

	bases := c.extractParentClasses(classNode, source)

	// 按方法分类收集类成员
	var attributes []model.Variable
	var methods, properties, staticMethods, abstractMethods []model.Function

	for _, def := range c.methodDefinitions(classNode, source) {
		fnName := ""
		if nameNode := def.fnNode.ChildByFieldName("name"); nameNode != nil {
			fnName = c.getNodeContent(nameNode, source)
		}

		// 构造方法不算方法，只贡献属性
		if fnName == constructorName {
			attributes = c.extractAttributes(def.fnNode, source)
			continue
		}

		fn := c.buildFunction(def.fnNode, fnName, source)

		// 标记冲突时按固定优先级取第一个命中的分类，保证行为确定
		switch classifyMarkers(def.decorators) {
		case markerProperty:
			properties = append(properties, fn)
		case markerAbstract:
			abstractMethods = append(abstractMethods, fn)
		case markerStatic:
			staticMethods = append(staticMethods, fn)
		default:
			methods = append(methods, fn)
		}
	}

	return model.ClassModel{
		Name:            name,
		ClassType:       ResolveClassType(bases),
		Attributes:      attributes,
		Methods:         methods,
		Properties:      properties,
		StaticMethods:   staticMethods,
		AbstractMethods: abstractMethods,
	}
}

// methodDef 把方法定义节点和它的裸标识符装饰器名捆在一起
type methodDef struct {
	fnNode     *sitter.Node
	decorators []string
}

// methodDefinitions 收集类体内的方法定义（含被装饰的），按源码顺序
func (c *Collector) methodDefinitions(classNode *sitter.Node, source []byte) []methodDef {
	body := classNode.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var defs []methodDef
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "function_definition":
			defs = append(defs, methodDef{fnNode: child})
		case "decorated_definition":
			def := child.ChildByFieldName("definition")
			if def == nil || def.Kind() != "function_definition" {
				continue
			}
			defs = append(defs, methodDef{fnNode: def, decorators: c.extractDecorators(child, source)})
		}
	}
	return defs
}

// extractDecorators 提取 decorated_definition 上的裸标识符装饰器名。
// 复杂装饰器表达式（属性访问、调用）不参与标记匹配，原样忽略。
func (c *Collector) extractDecorators(node *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil || child.Kind() != "decorator" {
			continue
		}

		expr := child.NamedChild(0)
		if expr != nil && expr.Kind() == "identifier" {
			names = append(names, c.getNodeContent(expr, source))
		}
	}
	return names
}

// getNodeContent 返回节点对应的源码文本
func (c *Collector) getNodeContent(node *sitter.Node, source []byte) string {
	return node.Utf8Text(source)
}
