package graph

// AddStatus 是图写入操作的结构化结果。
// 重复节点/重复边/端点缺失都是预期内的可恢复状态，不作为 error 返回。
type AddStatus int

const (
	Added           AddStatus = iota // Added: 写入成功
	Duplicate                        // Duplicate: 节点或边已存在，图未被修改
	MissingEndpoint                  // MissingEndpoint: 边的某个端点不是已有节点，图未被修改
)

func (s AddStatus) String() string {
	switch s {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	case MissingEndpoint:
		return "missing endpoint"
	default:
		return "unknown"
	}
}

// Graph 是一个一次写入的有向图，节点类型 T 必须可比较。
// 每个节点按插入顺序获得一个从 0 开始的稳定整数编号，
// 该编号仅用于内部邻接表，不参与节点身份。
type Graph[T comparable] struct {
	nodeToID map[T]int
	idToNode []T
	edges    map[int][]int
}

// New 创建一个空图
func New[T comparable]() *Graph[T] {
	return &Graph[T]{
		nodeToID: make(map[T]int),
		edges:    make(map[int][]int),
	}
}

// AddNode 插入一个节点。节点已存在时返回 Duplicate 且不改变图。
func (g *Graph[T]) AddNode(node T) AddStatus {
	if g.HasNode(node) {
		return Duplicate
	}

	id := len(g.idToNode)
	g.nodeToID[node] = id
	g.idToNode = append(g.idToNode, node)
	return Added
}

// HasNode 判断节点是否在图中
func (g *Graph[T]) HasNode(node T) bool {
	_, ok := g.nodeToID[node]
	return ok
}

// AddEdge 插入一条有向边。两个端点必须都已是图中节点，
// 同一有序对的第二次插入返回 Duplicate。失败时图不被修改。
func (g *Graph[T]) AddEdge(from, to T) AddStatus {
	if !g.HasNode(from) || !g.HasNode(to) {
		return MissingEndpoint
	}
	if g.HasEdge(from, to) {
		return Duplicate
	}

	fromID := g.nodeToID[from]
	g.edges[fromID] = append(g.edges[fromID], g.nodeToID[to])
	return Added
}

// HasEdge 判断有向边 from->to 是否存在
func (g *Graph[T]) HasEdge(from, to T) bool {
	fromID, ok := g.nodeToID[from]
	if !ok {
		return false
	}
	toID, ok := g.nodeToID[to]
	if !ok {
		return false
	}

	for _, id := range g.edges[fromID] {
		if id == toID {
			return true
		}
	}
	return false
}

// Edges 返回节点的出边目标，按插入顺序。节点不在图中时 ok 为 false。
func (g *Graph[T]) Edges(node T) (targets []T, ok bool) {
	id, inGraph := g.nodeToID[node]
	if !inGraph {
		return nil, false
	}

	for _, toID := range g.edges[id] {
		targets = append(targets, g.idToNode[toID])
	}
	return targets, true
}

// Nodes 返回所有节点，按插入顺序。
// 固定顺序保证下游的包树构建和渲染在多次运行间可复现。
func (g *Graph[T]) Nodes() []T {
	nodes := make([]T, len(g.idToNode))
	copy(nodes, g.idToNode)
	return nodes
}

// Len 返回节点数量
func (g *Graph[T]) Len() int {
	return len(g.idToNode)
}
