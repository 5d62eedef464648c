package collector

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lyubolp/py2uml/model"
)

// baseMarker 是基类标记的封闭分类，新标记在这里显式扩展
type baseMarker int

const (
	baseNone baseMarker = iota
	baseAbstract
	baseEnum
	baseException
)

// classifyBase 把单个基类标识符映射到标记分类
func classifyBase(name string) baseMarker {
	switch name {
	case "ABC", "ABCMeta":
		return baseAbstract
	case "Enum":
		return baseEnum
	case "Exception":
		return baseException
	}
	return baseNone
}

// ResolveClassType 按固定优先级 ABSTRACT > ENUM > EXCEPTION 判定类分类，
// 没有命中任何标记（或没有基类）时为普通类。
func ResolveClassType(bases []string) model.ClassType {
	for _, priority := range []baseMarker{baseAbstract, baseEnum, baseException} {
		for _, base := range bases {
			if classifyBase(base) == priority {
				switch priority {
				case baseAbstract:
					return model.ClassAbstract
				case baseEnum:
					return model.ClassEnum
				case baseException:
					return model.ClassException
				}
			}
		}
	}
	return model.ClassPlain
}

// extractParentClasses 提取类声明的基类标识符。
// 裸标识符直接取名；下标形式（泛型）取被下标的标识符，丢弃参数；
// 关键字实参（如 metaclass=...）不是基类，直接忽略；
// 其余形状记日志后跳过，不中断收集。
func (c *Collector) extractParentClasses(classNode *sitter.Node, source []byte) []string {
	superclasses := classNode.ChildByFieldName("superclasses")
	if superclasses == nil {
		return nil
	}

	var bases []string
	for i := 0; i < int(superclasses.NamedChildCount()); i++ {
		arg := superclasses.NamedChild(uint(i))
		if arg == nil {
			continue
		}

		switch arg.Kind() {
		case "identifier":
			bases = append(bases, c.getNodeContent(arg, source))
		case "subscript":
			value := arg.ChildByFieldName("value")
			if value != nil && value.Kind() == "identifier" {
				bases = append(bases, c.getNodeContent(value, source))
			} else {
				c.log.Warn("unknown parent class expression: %s", c.getNodeContent(arg, source))
			}
		case "keyword_argument":
			// metaclass= 等关键字实参不是基类
		default:
			c.log.Warn("unknown parent class expression: %s", c.getNodeContent(arg, source))
		}
	}

	return bases
}
