package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyubolp/py2uml/graph"
	"github.com/lyubolp/py2uml/model"
)

func TestTree_Insert(t *testing.T) {
	root := graph.NewTree("project")

	root.Insert([]string{"pkg", "a"})
	root.Insert([]string{"pkg", "b"})
	root.Insert([]string{"other", "c"})

	// 1. 同段共享节点，子节点按插入顺序
	require.Len(t, root.Children, 2)
	assert.Equal(t, "pkg", root.Children[0].Value)
	assert.Equal(t, "other", root.Children[1].Value)

	pkg := root.Children[0]
	require.Len(t, pkg.Children, 2)
	assert.Equal(t, "a", pkg.Children[0].Value)
	assert.Equal(t, "b", pkg.Children[1].Value)

	// 2. 重复插入同一路径不产生新节点
	root.Insert([]string{"pkg", "a"})
	assert.Len(t, pkg.Children, 2)
}

func TestTree_RoundTrip(t *testing.T) {
	// 把图中每个节点的路径插入包树后，深度优先收集的叶子
	// 恰好是图中的模块名集合（不丢、不重）
	g := graph.New[model.PythonModule]()
	g.AddNode(model.NewPythonModule("a", []string{"pkg"}))
	g.AddNode(model.NewPythonModule("b", []string{"pkg"}))
	g.AddNode(model.NewPythonModule("main", nil))
	g.AddNode(model.NewPythonModule("util", []string{"pkg", "sub"}))

	root := graph.NewTree("project")
	for _, node := range g.Nodes() {
		root.Insert(node.Path())
	}

	assert.Equal(t, []string{"a", "b", "util", "main"}, root.Leaves())
}

func TestTree_Walk_Levels(t *testing.T) {
	root := graph.NewTree("project")
	root.Insert([]string{"pkg", "sub", "mod"})

	levels := map[string]int{}
	root.Walk(func(node *graph.TreeNode, level int) {
		levels[node.Value] = level
	})

	assert.Equal(t, map[string]int{"project": 0, "pkg": 1, "sub": 2, "mod": 3}, levels)
}
