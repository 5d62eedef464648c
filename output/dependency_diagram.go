package output

import (
	"fmt"
	"strings"

	"github.com/lyubolp/py2uml/graph"
	"github.com/lyubolp/py2uml/model"
)

// connectionColors 是依赖连线的循环配色
var connectionColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// GenerateDependencyDiagram 把依赖图和它的包树序列化为 PlantUML 文本。
// 节点与连线都按图的插入顺序输出，包树子节点按插入顺序渲染
// （固定约定，保证图表文本在多次运行间逐字节一致）。
func GenerateDependencyDiagram(g *graph.Graph[model.PythonModule], tree *graph.TreeNode) []string {
	result := []string{"@startuml", ""}

	result = append(result, declareDiagramStyle()...)
	result = append(result, "")

	result = append(result, declareModulesIntoPackages(tree)...)
	result = append(result, "")

	result = append(result, declareConnections(g)...)

	result = append(result, "@enduml")
	return result
}

// BuildPackageTree 用图中每个节点的 包路径段+模块名 建一棵包树。
// 根节点是合成的项目名；每次生成运行各建一棵，渲染后即弃。
func BuildPackageTree(g *graph.Graph[model.PythonModule], rootName string) *graph.TreeNode {
	root := graph.NewTree(rootName)

	for _, node := range g.Nodes() {
		root.Insert(node.Path())
	}

	return root
}

func declareDiagramStyle() []string {
	return []string{
		"skinparam packageStyle rectangle",
		"skinparam linetype ortho",
		"skinparam class {",
		"    BackgroundColor White",
		"    BorderColor Black",
		"}",
		"left to right direction",
	}
}

// declareModulesIntoPackages 深度优先展开包树：
// 叶节点是模块声明，内部节点是 package 块，缩进按层级递增。
func declareModulesIntoPackages(tree *graph.TreeNode) []string {
	var buffer []string
	declarePackageNode(tree, 0, &buffer)
	return buffer
}

func declarePackageNode(node *graph.TreeNode, level int, buffer *[]string) {
	indent := strings.Repeat(" ", level*4)

	if node.IsLeaf() {
		*buffer = append(*buffer, fmt.Sprintf("%s[\"%s\"]", indent, node.Value))
		return
	}

	*buffer = append(*buffer, fmt.Sprintf("%spackage \"%s\" {", indent, node.Value))
	for _, child := range node.Children {
		declarePackageNode(child, level+1, buffer)
	}
	*buffer = append(*buffer, indent+"}")
}

func declareConnections(g *graph.Graph[model.PythonModule]) []string {
	var result []string

	for _, node := range g.Nodes() {
		targets, ok := g.Edges(node)
		if !ok || len(targets) == 0 {
			continue
		}

		for i, target := range targets {
			result = append(result, fmt.Sprintf("[\"%s\"] -[%s]-> [\"%s\"]",
				node.Name,
				connectionColors[i%len(connectionColors)],
				target.Name))
		}
		result = append(result, "")
	}

	return result
}
