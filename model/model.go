package model

// --- 类图领域模型 (Class Diagram Model) ---

// Visibility 是表示成员可见性的字符串常量
type Visibility string

const (
	Public    Visibility = "PUBLIC"    // Public: 常规命名 (e.g. "run", "__str__")
	Private   Visibility = "PRIVATE"   // Private: 双下划线前缀且非 dunder (e.g. "__secret")
	Protected Visibility = "PROTECTED" // Protected: 单下划线前缀 (e.g. "_cache")
)

// ClassType 是表示类分类的字符串常量
type ClassType string

const (
	ClassPlain     ClassType = "CLASS"     // ClassPlain: 普通类
	ClassAbstract  ClassType = "ABSTRACT"  // ClassAbstract: 继承 ABC/ABCMeta 的抽象类
	ClassEnum      ClassType = "ENUM"      // ClassEnum: 继承 Enum 的枚举类
	ClassException ClassType = "EXCEPTION" // ClassException: 继承 Exception 的异常类
)

// Variable 描述了一个属性或参数。构造后不可变。
type Variable struct {
	Name       string     `json:"Name"`
	Visibility Visibility `json:"Visibility"`
	TypeName   string     `json:"TypeName,omitempty"` // TypeName: 空串表示未知/未标注类型
}

// Function 描述了一个方法。Arguments 为 nil 表示没有参数；
// ReturnType 为 nil 表示没有返回值标注（渲染阶段才补 "void"）。
type Function struct {
	Name       string     `json:"Name"`
	Visibility Visibility `json:"Visibility"`
	Arguments  []Variable `json:"Arguments,omitempty"`
	ReturnType *string    `json:"ReturnType,omitempty"`
}

// ClassModel 是类图模式的核心输出结构，每个类定义产出一个，互不合并。
// 各成员切片为 nil 表示"该分类没有提取到任何成员"，渲染器据此整段省略；
// 构造方必须保证不会出现非 nil 的空切片。
type ClassModel struct {
	Name            string     `json:"Name"`
	ClassType       ClassType  `json:"ClassType"`
	Attributes      []Variable `json:"Attributes,omitempty"`
	Methods         []Function `json:"Methods,omitempty"`
	Properties      []Function `json:"Properties,omitempty"`
	StaticMethods   []Function `json:"StaticMethods,omitempty"`
	AbstractMethods []Function `json:"AbstractMethods,omitempty"`
}
