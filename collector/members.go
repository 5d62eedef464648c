package collector

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lyubolp/py2uml/model"
)

// --- 方法标记 (Method Markers) ---

// methodMarker 是方法装饰器标记的封闭分类。
// 新标记必须在这里显式扩展，不做开放式字符串匹配。
type methodMarker int

const (
	markerNone methodMarker = iota
	markerProperty
	markerAbstract
	markerStatic
)

// classifyDecorator 把单个装饰器名映射到标记分类
func classifyDecorator(name string) methodMarker {
	switch name {
	case "property":
		return markerProperty
	case "abstractmethod":
		return markerAbstract
	case "staticmethod":
		return markerStatic
	}
	return markerNone
}

// classifyMarkers 按固定优先级 property > abstractmethod > staticmethod
// 对装饰器集合归类。标记本不该组合出现，优先级保证组合时行为也确定。
func classifyMarkers(decorators []string) methodMarker {
	for _, priority := range []methodMarker{markerProperty, markerAbstract, markerStatic} {
		for _, name := range decorators {
			if classifyDecorator(name) == priority {
				return priority
			}
		}
	}
	return markerNone
}

// --- 可见性推断 (Visibility Inference) ---

// InferVisibility 纯粹按命名约定推断可见性：
// 双下划线前缀且非 dunder 为 PRIVATE，单下划线前缀为 PROTECTED，其余 PUBLIC。
func InferVisibility(name string) model.Visibility {
	if strings.HasPrefix(name, "__") && !strings.HasSuffix(name, "__") {
		return model.Private
	}
	if strings.HasPrefix(name, "_") {
		return model.Protected
	}
	return model.Public
}

// --- 属性提取 (Attribute Extraction) ---

// extractAttributes 扫描构造方法体内的赋值语句，收集 self.<name> 形式的属性。
// 遍历是显式先序深度优先，保证属性按源码声明顺序出现；
// 下降覆盖所有嵌套复合语句（条件、异常处理、with、match、嵌套定义）。
// 属性类型标注暂不提取，类型一律为空。
func (c *Collector) extractAttributes(initFn *sitter.Node, source []byte) []model.Variable {
	body := initFn.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var attributes []model.Variable
	c.scanAssignments(body, source, &attributes)
	return attributes
}

func (c *Collector) scanAssignments(node *sitter.Node, source []byte, out *[]model.Variable) {
	switch node.Kind() {
	case "assignment", "augmented_assignment":
		// 普通赋值、增强赋值和带标注赋值在语法树里共享这两种节点
		if name, ok := c.selfAttributeTarget(node, source); ok {
			*out = append(*out, model.Variable{
				Name:       name,
				Visibility: InferVisibility(name),
				TypeName:   "",
			})
		} else {
			c.log.Debug("skipping assignment with non-attribute target: %s", c.getNodeContent(node, source))
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(uint(i)); child != nil {
			c.scanAssignments(child, source, out)
		}
	}
}

// selfAttributeTarget 判断赋值目标是否为 self.<name> 形式，是则返回属性名。
// 元组目标、链式赋值等其它形状按个别构造跳过，不影响整个文件。
func (c *Collector) selfAttributeTarget(node *sitter.Node, source []byte) (string, bool) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "attribute" {
		return "", false
	}

	object := left.ChildByFieldName("object")
	if object == nil || object.Kind() != "identifier" || c.getNodeContent(object, source) != "self" {
		return "", false
	}

	attr := left.ChildByFieldName("attribute")
	if attr == nil {
		return "", false
	}
	return c.getNodeContent(attr, source), true
}

// --- 方法构建 (Function Building) ---

func (c *Collector) buildFunction(fnNode *sitter.Node, name string, source []byte) model.Function {
	return model.Function{
		Name:       name,
		Visibility: InferVisibility(name),
		Arguments:  c.extractArguments(fnNode, source),
		ReturnType: c.extractReturnType(fnNode, source),
	}
}

// extractArguments 收集全部参数分组，输出顺序固定为：
// 位置参数、仅位置参数、仅关键字参数、*args、**kwargs，组内保持源码顺序。
// 没有任何参数时返回 nil。
func (c *Collector) extractArguments(fnNode *sitter.Node, source []byte) []model.Variable {
	params := fnNode.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var positional, posOnly, kwOnly, varArgs, kwArgs []model.Variable
	seenStar := false // "*" 或 *args 之后的普通参数都是仅关键字参数

	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(uint(i))
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "positional_separator":
			// "/" 之前收到的位置参数实际都是仅位置参数
			posOnly = append(posOnly, positional...)
			positional = nil
			continue
		case "keyword_separator":
			seenStar = true
			continue
		}

		pattern, typeNode := c.parameterParts(child)
		if pattern == nil {
			c.log.Debug("skipping parameter with unexpected shape: %s", c.getNodeContent(child, source))
			continue
		}

		switch pattern.Kind() {
		case "list_splat_pattern":
			if v, ok := c.splatVariable(pattern, typeNode, source); ok {
				varArgs = append(varArgs, v)
			}
			seenStar = true
		case "dictionary_splat_pattern":
			if v, ok := c.splatVariable(pattern, typeNode, source); ok {
				kwArgs = append(kwArgs, v)
			}
		case "identifier":
			v := c.parameterVariable(pattern, typeNode, source)
			if seenStar {
				kwOnly = append(kwOnly, v)
			} else {
				positional = append(positional, v)
			}
		default:
			// 元组解包参数等形状没有单一名字，按个别构造跳过
			c.log.Debug("skipping parameter with unexpected shape: %s", c.getNodeContent(child, source))
		}
	}

	result := make([]model.Variable, 0, len(positional)+len(posOnly)+len(kwOnly)+len(varArgs)+len(kwArgs))
	result = append(result, positional...)
	result = append(result, posOnly...)
	result = append(result, kwOnly...)
	result = append(result, varArgs...)
	result = append(result, kwArgs...)

	if len(result) == 0 {
		return nil
	}
	return result
}

// parameterParts 把各种参数节点拆成名字模式和类型标注节点
func (c *Collector) parameterParts(node *sitter.Node) (pattern, typeNode *sitter.Node) {
	switch node.Kind() {
	case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
		return node, nil
	case "typed_parameter":
		return node.NamedChild(0), node.ChildByFieldName("type")
	case "default_parameter":
		return node.ChildByFieldName("name"), nil
	case "typed_default_parameter":
		return node.ChildByFieldName("name"), node.ChildByFieldName("type")
	}
	return nil, nil
}

func (c *Collector) parameterVariable(nameNode, typeNode *sitter.Node, source []byte) model.Variable {
	name := c.getNodeContent(nameNode, source)
	return model.Variable{
		Name:       name,
		Visibility: InferVisibility(name),
		TypeName:   c.annotationTypeName(typeNode, source),
	}
}

// splatVariable 取 *args / **kwargs 模式里的标识符
func (c *Collector) splatVariable(pattern, typeNode *sitter.Node, source []byte) (model.Variable, bool) {
	inner := pattern.NamedChild(0)
	if inner == nil || inner.Kind() != "identifier" {
		return model.Variable{}, false
	}
	return c.parameterVariable(inner, typeNode, source), true
}

// annotationTypeName 只接受裸标识符标注作为类型名；
// 下标泛型、联合类型、字符串引号、属性限定等复杂标注一律视为未知类型。
func (c *Collector) annotationTypeName(typeNode *sitter.Node, source []byte) string {
	if typeNode == nil {
		return ""
	}

	expr := typeNode.NamedChild(0)
	if expr == nil || expr.Kind() != "identifier" {
		return ""
	}
	return c.getNodeContent(expr, source)
}

// extractReturnType 提取返回值标注。无标注返回 nil（区别于渲染期的 "void"）；
// 复杂标注同样视为无标注。
func (c *Collector) extractReturnType(fnNode *sitter.Node, source []byte) *string {
	rt := fnNode.ChildByFieldName("return_type")
	if rt == nil {
		return nil
	}

	var expr *sitter.Node
	if rt.Kind() == "type" {
		expr = rt.NamedChild(0)
	} else {
		expr = rt
	}

	if expr == nil || expr.Kind() != "identifier" {
		return nil
	}

	name := c.getNodeContent(expr, source)
	return &name
}
