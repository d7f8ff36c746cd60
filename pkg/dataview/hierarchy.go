package dataview

// Level describes one categorical dimension of the diagram.
type Level struct {
	Name        string `json:"name"`                   // Bar name
	DisplayName string `json:"display_name,omitempty"` // Axis display name used in tooltips
}

// Label returns the display name, falling back to Name.
func (l Level) Label() string {
	if l.DisplayName != "" {
		return l.DisplayName
	}
	return l.Name
}

// Node is a categorical hierarchy node. The root has Level -1; its children
// are the values of level 0.
type Node struct {
	Level    int     `json:"level"`
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Children []*Node `json:"children,omitempty"`
}

// Hierarchy is the ordered list of levels and the tree of category values.
type Hierarchy struct {
	Levels []Level `json:"levels"`
	Root   *Node   `json:"root"`
}

// Depth returns the number of levels.
func (h *Hierarchy) Depth() int {
	if h == nil {
		return 0
	}
	return len(h.Levels)
}

// Walk visits every node below the root in depth-first pre-order.
func (h *Hierarchy) Walk(fn func(*Node)) {
	if h == nil || h.Root == nil {
		return
	}
	var visit func(n *Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, c := range h.Root.Children {
		visit(c)
	}
}

// BuildHierarchy derives a hierarchy tree from the category paths of rows.
// Children appear in first-seen order. A key seen with several labels keeps
// the one chosen by [PreferLabel].
// Rows with fewer categories than levels contribute only the levels they have.
func BuildHierarchy(levels []Level, rows []Row) *Hierarchy {
	root := &Node{Level: -1}
	index := map[*Node]map[string]*Node{}

	for _, r := range rows {
		cur := root
		for i, c := range r.Categories() {
			if i >= len(levels) {
				break
			}
			children := index[cur]
			if children == nil {
				children = map[string]*Node{}
				index[cur] = children
			}
			next, ok := children[c.Key]
			if !ok {
				next = &Node{Level: i, Key: c.Key, Label: c.Label}
				children[c.Key] = next
				cur.Children = append(cur.Children, next)
			} else {
				next.Label = PreferLabel(next.Label, c.Label)
			}
			cur = next
		}
	}
	return &Hierarchy{Levels: levels, Root: root}
}
