package output

import (
	"fmt"
	"strings"

	"github.com/lyubolp/py2uml/model"
)

// memberIndent 是类成员行的缩进
const memberIndent = "    "

// GenerateClassDiagram 把 ClassModel 序列化为 PlantUML 类图文本。
// 成员分段顺序固定：属性、property、普通方法、静态方法、抽象方法；
// 为 nil 的分段整段省略。
func GenerateClassDiagram(models []model.ClassModel) []string {
	result := []string{"@startuml", ""}

	for _, m := range models {
		result = append(result, classToUML(&m)...)
		result = append(result, "")
	}

	result = append(result, "@enduml")
	return result
}

func classToUML(m *model.ClassModel) []string {
	result := []string{classHeader(m)}

	for _, attribute := range m.Attributes {
		result = append(result, attributeToUML(&attribute))
	}
	for _, property := range m.Properties {
		result = append(result, methodToUML(&property, ""))
	}
	for _, method := range m.Methods {
		result = append(result, methodToUML(&method, ""))
	}
	for _, method := range m.StaticMethods {
		result = append(result, methodToUML(&method, "{static} "))
	}
	for _, method := range m.AbstractMethods {
		result = append(result, methodToUML(&method, "{abstract} "))
	}

	result = append(result, "}", "")
	return result
}

// classHeader 按类分类选择 PlantUML 声明关键字
func classHeader(m *model.ClassModel) string {
	switch m.ClassType {
	case model.ClassAbstract:
		return fmt.Sprintf("abstract class %s {", m.Name)
	case model.ClassEnum:
		return fmt.Sprintf("enum %s {", m.Name)
	case model.ClassException:
		return fmt.Sprintf("class %s <<exception>> {", m.Name)
	default:
		return fmt.Sprintf("class %s {", m.Name)
	}
}

func attributeToUML(attribute *model.Variable) string {
	if attribute.TypeName == "" {
		return fmt.Sprintf("%s%s %s", memberIndent, visibilityToUML(attribute.Visibility), attribute.Name)
	}
	return fmt.Sprintf("%s%s %s : %s", memberIndent, visibilityToUML(attribute.Visibility), attribute.Name, attribute.TypeName)
}

func methodToUML(method *model.Function, modifier string) string {
	args := argumentsToUML(method.Arguments)
	returnType := returnTypeToUML(method.ReturnType)

	if returnType == "" {
		return fmt.Sprintf("%s%s%s %s(%s)", memberIndent, modifier, visibilityToUML(method.Visibility), method.Name, args)
	}
	return fmt.Sprintf("%s%s%s %s(%s) : %s", memberIndent, modifier, visibilityToUML(method.Visibility), method.Name, args, returnType)
}

func argumentsToUML(arguments []model.Variable) string {
	parts := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if argument.TypeName == "" {
			parts = append(parts, argument.Name)
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", argument.Name, argument.TypeName))
		}
	}
	return strings.Join(parts, ", ")
}

// returnTypeToUML 把缺失的返回值标注渲染为显式的 "void" 标记
func returnTypeToUML(returnType *string) string {
	if returnType == nil {
		return "void"
	}
	return *returnType
}

func visibilityToUML(visibility model.Visibility) string {
	switch visibility {
	case model.Private:
		return "-"
	case model.Protected:
		return "#"
	default:
		return "+"
	}
}
