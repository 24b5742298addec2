package physics

// Bounded is implemented by anything that can be stored in a Quadtree.
type Bounded interface {
	Bounds() Rect
}

// Quadtree is a region quadtree for broad-phase queries. It is rebuilt from
// scratch every tick: Clear, then Insert every object.
//
// Objects are stored at the deepest node whose quadrant fully contains their
// bounds, so objects straddling a split line stay at the parent. Retrieve
// returns a conservative superset of the objects overlapping a rectangle;
// callers must re-verify candidates with an exact test.
type Quadtree[T Bounded] struct {
	capacity int // Objects per node before it splits
	maxDepth int // Nodes at this depth never split
	root     *quadNode[T]
	free     []*quadNode[T] // Recycled nodes (reused between rebuilds)
	size     int
}

type quadNode[T Bounded] struct {
	depth    int
	bounds   Rect
	items    []T
	children [4]*quadNode[T] // All nil for a leaf
}

// NewQuadtree creates an empty quadtree covering bounds.
func NewQuadtree[T Bounded](bounds Rect, capacity, maxDepth int) *Quadtree[T] {
	if capacity < 1 {
		capacity = 1
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Quadtree[T]{
		capacity: capacity,
		maxDepth: maxDepth,
		root:     &quadNode[T]{bounds: bounds},
	}
}

// Len returns the number of objects inserted since the last Clear.
func (q *Quadtree[T]) Len() int {
	return q.size
}

// Bounds returns the region covered by the root node.
func (q *Quadtree[T]) Bounds() Rect {
	return q.root.bounds
}

// Clear removes all objects. Child nodes are kept for reuse by later splits.
func (q *Quadtree[T]) Clear() {
	q.release(q.root)
	q.size = 0
}

func (q *Quadtree[T]) release(n *quadNode[T]) {
	clear(n.items)
	n.items = n.items[:0]
	if n.children[0] == nil {
		return
	}
	for i, c := range n.children {
		q.release(c)
		q.free = append(q.free, c)
		n.children[i] = nil
	}
}

// Insert adds an object using its current bounds.
func (q *Quadtree[T]) Insert(obj T) {
	q.size++
	q.insert(q.root, obj)
}

func (q *Quadtree[T]) insert(n *quadNode[T], obj T) {
	b := obj.Bounds()
	for n.children[0] != nil {
		i := n.quadrant(b)
		if i < 0 {
			break
		}
		n = n.children[i]
	}

	n.items = append(n.items, obj)
	if len(n.items) <= q.capacity || n.depth >= q.maxDepth {
		return
	}

	if n.children[0] == nil {
		q.split(n)
	}

	// Push down everything that now fits inside a single child
	kept := n.items[:0]
	for _, it := range n.items {
		if i := n.quadrant(it.Bounds()); i >= 0 {
			q.insert(n.children[i], it)
		} else {
			kept = append(kept, it)
		}
	}
	clear(n.items[len(kept):])
	n.items = kept
}

// split creates the four equal child quadrants of n.
func (q *Quadtree[T]) split(n *quadNode[T]) {
	hw := n.bounds.W / 2
	hh := n.bounds.H / 2
	x, y := n.bounds.X, n.bounds.Y
	quads := [4]Rect{
		{X: x + hw, Y: y, W: hw, H: hh},      // top right
		{X: x, Y: y, W: hw, H: hh},           // top left
		{X: x, Y: y + hh, W: hw, H: hh},      // bottom left
		{X: x + hw, Y: y + hh, W: hw, H: hh}, // bottom right
	}
	for i, r := range quads {
		c := q.newNode()
		c.depth = n.depth + 1
		c.bounds = r
		n.children[i] = c
	}
}

func (q *Quadtree[T]) newNode() *quadNode[T] {
	if k := len(q.free); k > 0 {
		n := q.free[k-1]
		q.free = q.free[:k-1]
		return n
	}
	return &quadNode[T]{}
}

// quadrant returns the index of the child that fully contains b, or -1.
func (n *quadNode[T]) quadrant(b Rect) int {
	for i, c := range n.children {
		if c.bounds.Contains(b) {
			return i
		}
	}
	return -1
}

// Retrieve appends to dst every object stored on a path from the root to the
// nodes overlapping r, and returns the extended slice. The result contains
// every object whose bounds overlap r, plus false positives.
func (q *Quadtree[T]) Retrieve(r Rect, dst []T) []T {
	return q.retrieve(q.root, r, dst)
}

func (q *Quadtree[T]) retrieve(n *quadNode[T], r Rect, dst []T) []T {
	dst = append(dst, n.items...)
	if n.children[0] == nil {
		return dst
	}
	for _, c := range n.children {
		if c.bounds.Overlaps(r) {
			dst = q.retrieve(c, r, dst)
		}
	}
	return dst
}

// Depth returns the depth of the deepest node currently in the tree.
func (q *Quadtree[T]) Depth() int {
	return q.root.maxDepth()
}

func (n *quadNode[T]) maxDepth() int {
	if n.children[0] == nil {
		return n.depth
	}
	d := n.depth
	for _, c := range n.children {
		if cd := c.maxDepth(); cd > d {
			d = cd
		}
	}
	return d
}
