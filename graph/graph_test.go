package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyubolp/py2uml/graph"
)

func TestGraph_AddNode(t *testing.T) {
	g := graph.New[string]()

	// 1. 首次插入成功，节点立即可查
	require.Equal(t, graph.Added, g.AddNode("a"))
	assert.True(t, g.HasNode("a"))
	assert.Equal(t, 1, g.Len())

	// 2. 相等值的二次插入报告重复，节点数不变
	assert.Equal(t, graph.Duplicate, g.AddNode("a"))
	assert.Equal(t, 1, g.Len())
}

func TestGraph_AddEdge(t *testing.T) {
	g := graph.New[string]()
	g.AddNode("a")
	g.AddNode("b")

	// 1. 端点缺失时失败且不改变图
	assert.Equal(t, graph.MissingEndpoint, g.AddEdge("a", "missing"))
	assert.Equal(t, graph.MissingEndpoint, g.AddEdge("missing", "a"))
	assert.False(t, g.HasEdge("a", "missing"))

	// 2. 同一有序对恰好成功一次
	require.Equal(t, graph.Added, g.AddEdge("a", "b"))
	assert.True(t, g.HasEdge("a", "b"))

	edgesBefore, ok := g.Edges("a")
	require.True(t, ok)

	assert.Equal(t, graph.Duplicate, g.AddEdge("a", "b"))
	edgesAfter, ok := g.Edges("a")
	require.True(t, ok)
	assert.Equal(t, edgesBefore, edgesAfter)

	// 3. 有向性：反向边是独立的
	assert.False(t, g.HasEdge("b", "a"))
	assert.Equal(t, graph.Added, g.AddEdge("b", "a"))
}

func TestGraph_SelfLoop(t *testing.T) {
	// 自环不做抑制，属于接受的行为
	g := graph.New[string]()
	g.AddNode("a")

	assert.Equal(t, graph.Added, g.AddEdge("a", "a"))
	assert.True(t, g.HasEdge("a", "a"))
}

func TestGraph_Edges_MissingNode(t *testing.T) {
	g := graph.New[string]()

	_, ok := g.Edges("missing")
	assert.False(t, ok)
}

func TestGraph_Nodes_InsertionOrder(t *testing.T) {
	g := graph.New[string]()
	for _, node := range []string{"c", "a", "b"} {
		g.AddNode(node)
	}
	g.AddNode("a") // 重复插入不影响顺序

	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())
}
