package collector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lyubolp/py2uml/collector"
	"github.com/lyubolp/py2uml/model"
	"github.com/lyubolp/py2uml/parser"
)

func parseSource(t *testing.T, source string) (*sitter.Node, *[]byte) {
	t.Helper()

	p, err := parser.NewParser(model.LangPython)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	root, err := p.Parse([]byte(source))
	require.NoError(t, err)

	content := []byte(source)
	return root, &content
}

func collectSingleClass(t *testing.T, source string) model.ClassModel {
	t.Helper()

	root, content := parseSource(t, source)
	models := collector.NewCollector().CollectClasses(root, content)
	require.Len(t, models, 1)
	return models[0]
}

func TestInferVisibility(t *testing.T) {
	tests := []struct {
		name     string
		expected model.Visibility
	}{
		{"x", model.Public},
		{"_x", model.Protected},
		{"__x", model.Private},
		{"__x__", model.Public}, // dunder 永远不算 private
		{"run", model.Public},
		{"_cache", model.Protected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, collector.InferVisibility(tt.name), "name %q", tt.name)
	}
}

func TestResolveClassType(t *testing.T) {
	tests := []struct {
		bases    []string
		expected model.ClassType
	}{
		{nil, model.ClassPlain},
		{[]string{"Base"}, model.ClassPlain},
		{[]string{"ABC"}, model.ClassAbstract},
		{[]string{"ABCMeta"}, model.ClassAbstract},
		{[]string{"Enum"}, model.ClassEnum},
		{[]string{"Exception"}, model.ClassException},
		// 优先级：ABSTRACT > ENUM > EXCEPTION，与基类声明顺序无关
		{[]string{"ABC", "Enum"}, model.ClassAbstract},
		{[]string{"Enum", "ABC"}, model.ClassAbstract},
		{[]string{"Exception", "Enum"}, model.ClassEnum},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, collector.ResolveClassType(tt.bases), "bases %v", tt.bases)
	}
}

// 验证抽象类 + 构造方法属性的端到端场景
func TestCollectClasses_AbstractClassWithAttribute(t *testing.T) {
	source := `class Foo(ABC):
    def __init__(self):
        self.x = 1
`
	m := collectSingleClass(t, source)

	assert.Equal(t, "Foo", m.Name)
	assert.Equal(t, model.ClassAbstract, m.ClassType)
	assert.Equal(t, []model.Variable{{Name: "x", Visibility: model.Public, TypeName: ""}}, m.Attributes)
	assert.Nil(t, m.Methods) // 构造方法不算方法
	assert.Nil(t, m.Properties)
	assert.Nil(t, m.StaticMethods)
	assert.Nil(t, m.AbstractMethods)
}

func TestCollectClasses_SubscriptedBase(t *testing.T) {
	source := `class Registry(Mapping[str, int]):
    pass
`
	m := collectSingleClass(t, source)

	// 下标形式的基类取被下标的标识符
	assert.Equal(t, "Registry", m.Name)
	assert.Equal(t, model.ClassPlain, m.ClassType)
}

func TestCollectClasses_NestedAttributeAssignments(t *testing.T) {
	source := `class Config:
    def __init__(self, raw):
        self.raw = raw
        if raw:
            self.loaded = True
        try:
            with open(raw) as f:
                self.content = f.read()
        except OSError:
            self.error = "unreadable"
        self.count += 1
        self.label: str = "cfg"
`
	m := collectSingleClass(t, source)

	names := make([]string, 0, len(m.Attributes))
	for _, attribute := range m.Attributes {
		names = append(names, attribute.Name)
	}

	// 先序遍历保持源码声明顺序，嵌套复合语句里的赋值也被发现
	assert.Equal(t, []string{"raw", "loaded", "content", "error", "count", "label"}, names)
}

func TestCollectClasses_NonSelfTargetsSkipped(t *testing.T) {
	source := `class Weird:
    def __init__(self, other):
        local = 1
        other.x = 2
        self.a, self.b = 1, 2
        self.kept = 3
`
	m := collectSingleClass(t, source)

	// 局部变量、非 self 属性和元组目标按个别构造跳过
	require.Len(t, m.Attributes, 1)
	assert.Equal(t, "kept", m.Attributes[0].Name)
}

func TestCollectClasses_NoConstructor(t *testing.T) {
	source := `class Empty:
    def run(self):
        self.late = 1
`
	m := collectSingleClass(t, source)

	// 没有构造方法时属性缺席（而非空列表），其它方法体不参与属性扫描
	assert.Nil(t, m.Attributes)
	require.Len(t, m.Methods, 1)
	assert.Equal(t, "run", m.Methods[0].Name)
}

func TestCollectClasses_MethodCategories(t *testing.T) {
	source := `class Service(object):
    def __init__(self):
        self.started = False

    def start(self):
        pass

    @property
    def name(self) -> str:
        return "svc"

    @staticmethod
    def helper(value: int) -> int:
        return value

    @abstractmethod
    def run(self):
        pass

    @functools.cache
    def cached(self):
        pass
`
	m := collectSingleClass(t, source)

	// 1. 分类划分
	require.Len(t, m.Methods, 2) // start + cached（复杂装饰器不参与标记匹配）
	assert.Equal(t, "start", m.Methods[0].Name)
	assert.Equal(t, "cached", m.Methods[1].Name)

	require.Len(t, m.Properties, 1)
	assert.Equal(t, "name", m.Properties[0].Name)
	require.NotNil(t, m.Properties[0].ReturnType)
	assert.Equal(t, "str", *m.Properties[0].ReturnType)

	require.Len(t, m.StaticMethods, 1)
	assert.Equal(t, "helper", m.StaticMethods[0].Name)

	require.Len(t, m.AbstractMethods, 1)
	assert.Equal(t, "run", m.AbstractMethods[0].Name)
}

func TestCollectClasses_ArgumentsAndTypes(t *testing.T) {
	source := `class Calc:
    def add(self, a: int, b: "int", c: list[int], *args, scale: float, **options) -> int:
        return a + b
`
	m := collectSingleClass(t, source)

	require.Len(t, m.Methods, 1)
	fn := m.Methods[0]

	names := make([]string, 0, len(fn.Arguments))
	types := make([]string, 0, len(fn.Arguments))
	for _, argument := range fn.Arguments {
		names = append(names, argument.Name)
		types = append(types, argument.TypeName)
	}

	// 分组输出顺序：位置参数、仅关键字参数、*args、**kwargs
	assert.Equal(t, []string{"self", "a", "b", "c", "scale", "args", "options"}, names)
	// 只有裸标识符标注贡献类型名；字符串引号和下标泛型视为未知
	assert.Equal(t, []string{"", "int", "", "", "float", "", ""}, types)

	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, "int", *fn.ReturnType)
}

func TestCollectClasses_PositionalOnlyGrouping(t *testing.T) {
	source := `class Point:
    def move(self, dx, /, dy):
        pass
`
	m := collectSingleClass(t, source)

	require.Len(t, m.Methods, 1)
	names := make([]string, 0, 3)
	for _, argument := range m.Methods[0].Arguments {
		names = append(names, argument.Name)
	}

	// 位置参数组在前，仅位置参数组在后
	assert.Equal(t, []string{"dy", "self", "dx"}, names)
}

func TestCollectClasses_NoReturnAnnotation(t *testing.T) {
	source := `class Runner:
    def run(self):
        pass

    def stop(self) -> "Runner":
        pass
`
	m := collectSingleClass(t, source)

	require.Len(t, m.Methods, 2)
	assert.Nil(t, m.Methods[0].ReturnType) // 无标注
	assert.Nil(t, m.Methods[1].ReturnType) // 复杂标注同样视为无标注
}

func TestCollectClasses_TopLevelOnly(t *testing.T) {
	source := `class Outer:
    class Inner:
        pass

def free_function():
    pass

@dataclass
class Decorated:
    pass
`
	root, content := parseSource(t, source)
	models := collector.NewCollector().CollectClasses(root, content)

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}

	// 只有顶层类参与建模，被装饰的顶层类同样计入
	assert.Equal(t, []string{"Outer", "Decorated"}, names)
}

func TestCollectClasses_SameNameNotMerged(t *testing.T) {
	source := `class Dup:
    def a(self):
        pass

class Dup:
    def b(self):
        pass
`
	root, content := parseSource(t, source)
	models := collector.NewCollector().CollectClasses(root, content)

	// 同名类各自独立建模，不做合并
	require.Len(t, models, 2)
	assert.Equal(t, "a", models[0].Methods[0].Name)
	assert.Equal(t, "b", models[1].Methods[0].Name)
}
