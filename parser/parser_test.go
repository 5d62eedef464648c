package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyubolp/py2uml/model"
	"github.com/lyubolp/py2uml/parser"
)

func TestParser_SequentialReuse(t *testing.T) {
	p, err := parser.NewParser(model.LangPython)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	// 同一个解析器逐文件复用：每次 Parse 释放上一棵树，新树照常可用
	for _, source := range []string{
		"class A:\n    pass\n",
		"class B:\n    def run(self):\n        pass\n",
		"x = 1\n",
	} {
		root, err := p.Parse([]byte(source))
		require.NoError(t, err)
		assert.Equal(t, "module", root.Kind())
		assert.False(t, root.HasError())
	}
}

func TestParser_SyntaxError(t *testing.T) {
	p, err := parser.NewParser(model.LangPython)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	_, err = p.Parse([]byte("def broken(:\n"))
	assert.ErrorContains(t, err, "syntax errors")

	// 失败之后解析器仍然可用
	root, err := p.Parse([]byte("y = 2\n"))
	require.NoError(t, err)
	assert.False(t, root.HasError())
}

func TestParser_UnregisteredLanguage(t *testing.T) {
	_, err := parser.NewParser(model.Language("cobol"))
	assert.ErrorContains(t, err, "not registered")
}
