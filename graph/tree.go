package graph

import (
	"fmt"
	"strings"
)

// TreeNode 是包树的一个节点，独占持有其子节点。
// 同级子节点的 Value 互不相同，顺序为插入顺序（决定渲染顺序）。
// 叶节点对应具体模块，内部节点对应包分组。
type TreeNode struct {
	Value    string
	Children []*TreeNode
}

// NewTree 创建一棵只有合成根节点（通常是项目名）的包树
func NewTree(rootValue string) *TreeNode {
	return &TreeNode{Value: rootValue}
}

// Insert 沿根向下插入一条路径（包路径段 + 模块名）。
// 每一层查找 Value 等于当前段的子节点，找到则下降，
// 否则追加一个新子节点再下降；路径耗尽时结束。
func (n *TreeNode) Insert(parts []string) {
	if len(parts) == 0 {
		return
	}

	top := parts[0]
	for _, child := range n.Children {
		if child.Value == top {
			child.Insert(parts[1:])
			return
		}
	}

	child := &TreeNode{Value: top}
	n.Children = append(n.Children, child)
	child.Insert(parts[1:])
}

// IsLeaf 判断节点是否为叶节点（具体模块）
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk 对树做先序深度优先遍历，子节点按插入顺序访问。
// level 是从根（0）起算的深度。
func (n *TreeNode) Walk(visit func(node *TreeNode, level int)) {
	n.walk(visit, 0)
}

func (n *TreeNode) walk(visit func(node *TreeNode, level int), level int) {
	visit(n, level)
	for _, child := range n.Children {
		child.walk(visit, level+1)
	}
}

// Leaves 收集全部叶节点的 Value，按先序遍历顺序
func (n *TreeNode) Leaves() []string {
	var result []string
	n.Walk(func(node *TreeNode, level int) {
		if node.IsLeaf() {
			result = append(result, node.Value)
		}
	})
	return result
}

func (n *TreeNode) String() string {
	names := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		names = append(names, child.Value)
	}
	return fmt.Sprintf("Node '%s' with children: [%s]", n.Value, strings.Join(names, ", "))
}
