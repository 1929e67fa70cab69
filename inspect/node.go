package inspect

// Node is one region of a resolved layout.
type Node struct {
	// Type is the region kind (e.g., "Workspace", "Cell", "Hotseat").
	Type string `json:"type"`

	// ID is an optional identifier for the region.
	ID string `json:"id,omitempty"`

	// Bounds is the region in window pixels.
	Bounds Bounds `json:"bounds"`

	// Visible is false for regions that take no space, like a hidden dock.
	Visible bool `json:"visible"`

	// State holds region specific values.
	State map[string]interface{} `json:"state,omitempty"`

	// Children contains nested regions.
	Children []*Node `json:"children,omitempty"`
}

// Bounds is a rectangle in window pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right is the x coordinate just past the rectangle.
func (b Bounds) Right() int { return b.X + b.Width }

// Bottom is the y coordinate just past the rectangle.
func (b Bounds) Bottom() int { return b.Y + b.Height }

// Contains reports whether o lies entirely inside b.
func (b Bounds) Contains(o Bounds) bool {
	return o.X >= b.X && o.Y >= b.Y && o.Right() <= b.Right() && o.Bottom() <= b.Bottom()
}

// NewNode creates a new Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// Hide marks the node as taking no space.
func (n *Node) Hide() *Node {
	n.Visible = false
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Find returns the first node of the given type, searching depth first.
func (n *Node) Find(nodeType string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes of the given type in the tree.
func (n *Node) Count(nodeType string) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Type == nodeType {
		count++
	}
	for _, c := range n.Children {
		count += c.Count(nodeType)
	}
	return count
}
