package graphpath

import "github.com/phanxgames/recdeck"

// Kind is the closed set of graph node kinds.
type Kind uint8

const (
	KindUser Kind = iota
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindItem:
		return "item"
	}
	return "unknown"
}

// Node is one user or item of the scenario. Identity and position are fixed
// for the controller's lifetime.
type Node struct {
	ID    string
	Kind  Kind
	Label string // "\n" separates label lines
	Pos   recdeck.Vec2
}

// Edge is an interaction between a user and an item. Removed is set only by
// AugmentStructure and cleared only by Reset.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Label    string
	Removed  bool
	Critical bool
}

// Connects reports whether the edge joins a and b, in either direction.
// Interactions are symmetric for collaborative filtering, so a path may walk
// an edge from item to user.
func (e Edge) Connects(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// Segment is one revealed hop of the recommendation path.
type Segment struct {
	From, To string
}

// Scenario node ids.
const (
	User1 = "user1"
	User2 = "user2"
	ItemA = "itemA"
	ItemB = "itemB"
	ItemC = "itemC"
)

func scenarioNodes() []Node {
	return []Node{
		{ID: User1, Kind: KindUser, Label: "Usuario 1\n(Tú)", Pos: recdeck.Vec2{X: 120, Y: 130}},
		{ID: User2, Kind: KindUser, Label: "Usuario 2\n(Similar)", Pos: recdeck.Vec2{X: 120, Y: 230}},
		{ID: ItemA, Kind: KindItem, Label: "Ítem A\n\"Dune\"", Pos: recdeck.Vec2{X: 300, Y: 60}},
		{ID: ItemB, Kind: KindItem, Label: "Ítem B\n\"Hyperion\"", Pos: recdeck.Vec2{X: 300, Y: 180}},
		{ID: ItemC, Kind: KindItem, Label: "Ítem C\n\"Fundación\"", Pos: recdeck.Vec2{X: 300, Y: 300}},
	}
}

func scenarioEdges() []*Edge {
	return []*Edge{
		{ID: "link1", Source: User1, Target: ItemA, Label: "Leíste"},
		{ID: "link2", Source: User1, Target: ItemB, Label: "Leíste"},
		{ID: "link3", Source: User2, Target: ItemB, Label: "También leyó"},
		{ID: "link4", Source: User2, Target: ItemC, Label: "También leyó", Critical: true},
		{ID: "link5", Source: User2, Target: ItemA, Label: "También leyó"},
	}
}

// recommendationPath is the hop sequence user1 → itemB → user2 → itemC.
var recommendationPath = []string{User1, ItemB, User2, ItemC}

// graph is the model half of the controller: nodes, edges and the derived
// reachability. It has no visuals.
type graph struct {
	nodes []Node
	index map[string]int
	edges []*Edge
}

func newGraph(nodes []Node, edges []*Edge) *graph {
	g := &graph{nodes: nodes, edges: edges, index: make(map[string]int, len(nodes))}
	for i, n := range nodes {
		g.index[n.ID] = i
	}
	return g
}

func (g *graph) node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// edgeBetween returns the edge joining a and b, removed or not.
func (g *graph) edgeBetween(a, b string) *Edge {
	for _, e := range g.edges {
		if e.Connects(a, b) {
			return e
		}
	}
	return nil
}

func (g *graph) critical() *Edge {
	for _, e := range g.edges {
		if e.Critical {
			return e
		}
	}
	return nil
}

// reachable walks non-removed edges from the given node.
func (g *graph) reachable(from string) map[string]bool {
	seen := map[string]bool{}
	if _, ok := g.index[from]; !ok {
		return seen
	}
	seen[from] = true
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.edges {
			if e.Removed {
				continue
			}
			var next string
			switch cur {
			case e.Source:
				next = e.Target
			case e.Target:
				next = e.Source
			default:
				continue
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// connectedPrefix returns the longest prefix of path whose consecutive hops
// all have a live edge, and the first broken hop if there is one.
func (g *graph) connectedPrefix(path []string) (prefix []string, broken Segment, isBroken bool) {
	if len(path) == 0 {
		return nil, Segment{}, false
	}
	prefix = []string{path[0]}
	for i := 0; i+1 < len(path); i++ {
		e := g.edgeBetween(path[i], path[i+1])
		if e == nil || e.Removed {
			return prefix, Segment{From: path[i], To: path[i+1]}, true
		}
		prefix = append(prefix, path[i+1])
	}
	return prefix, Segment{}, false
}
