package physics

import (
	"testing"

	"pgregory.net/rapid"
)

type box struct {
	id int
	r  Rect
}

func (b *box) Bounds() Rect { return b.r }

func newBox(id int, x, y, w, h float64) *box {
	return &box{id: id, r: Rect{X: x, Y: y, W: w, H: h}}
}

func ids(items []*box) map[int]bool {
	out := make(map[int]bool, len(items))
	for _, b := range items {
		out[b.id] = true
	}
	return out
}

func TestQuadtreeSplitsWhenOverCapacity(t *testing.T) {
	q := NewQuadtree[*box](Rect{W: 100, H: 100}, 4, 5)
	for i := 0; i < 5; i++ {
		q.Insert(newBox(i, 10+float64(i), 10, 2, 2)) // All in the top-left quadrant
	}

	if q.root.children[0] == nil {
		t.Fatal("root did not split after exceeding capacity")
	}
	if len(q.root.items) != 0 {
		t.Fatalf("root kept %d items, want 0", len(q.root.items))
	}
	if got := q.Len(); got != 5 {
		t.Fatalf("Len = %d, want 5", got)
	}
}

func TestQuadtreeStraddlingObjectStaysAtParent(t *testing.T) {
	q := NewQuadtree[*box](Rect{W: 100, H: 100}, 1, 5)
	q.Insert(newBox(0, 10, 10, 2, 2))
	q.Insert(newBox(1, 45, 45, 10, 10)) // Crosses both split lines

	if q.root.children[0] == nil {
		t.Fatal("expected split")
	}
	if len(q.root.items) != 1 || q.root.items[0].id != 1 {
		t.Fatalf("root items = %v, want only the straddling box", q.root.items)
	}
}

func TestQuadtreeRespectsMaxDepth(t *testing.T) {
	q := NewQuadtree[*box](Rect{W: 1024, H: 1024}, 1, 3)
	for i := 0; i < 50; i++ {
		q.Insert(newBox(i, 1, 1, 0.5, 0.5))
	}
	if d := q.Depth(); d != 3 {
		t.Fatalf("depth = %d, want 3", d)
	}
}

func TestQuadtreeRetrieveIncludesPathObjects(t *testing.T) {
	q := NewQuadtree[*box](Rect{W: 100, H: 100}, 1, 5)
	far := newBox(0, 80, 80, 2, 2)
	near := newBox(1, 10, 10, 2, 2)
	mid := newBox(2, 45, 45, 10, 10)
	q.Insert(far)
	q.Insert(near)
	q.Insert(mid)

	got := ids(q.Retrieve(Rect{X: 5, Y: 5, W: 10, H: 10}, nil))
	if !got[near.id] {
		t.Error("missing overlapping object")
	}
	if !got[mid.id] {
		t.Error("missing root-level object on the query path")
	}
	if got[far.id] {
		t.Error("object in a disjoint quadrant should not be returned")
	}
}

func TestQuadtreeClearReusesNodes(t *testing.T) {
	q := NewQuadtree[*box](Rect{W: 100, H: 100}, 1, 5)
	for i := 0; i < 10; i++ {
		q.Insert(newBox(i, float64(i*9), float64(i*9), 1, 1))
	}
	q.Clear()

	if q.Len() != 0 || len(q.root.items) != 0 || q.root.children[0] != nil {
		t.Fatal("Clear left objects or children behind")
	}
	if len(q.free) == 0 {
		t.Fatal("expected released nodes in the free list")
	}
	if got := q.Retrieve(Rect{W: 100, H: 100}, nil); len(got) != 0 {
		t.Fatalf("Retrieve after Clear returned %d objects", len(got))
	}

	pooled := len(q.free)
	q.Insert(newBox(0, 10, 10, 1, 1))
	q.Insert(newBox(1, 80, 80, 1, 1))
	if len(q.free) != pooled-4 {
		t.Fatalf("split did not reuse nodes: free %d -> %d", pooled, len(q.free))
	}
}

func TestQuadtreeRetrieveIsSupersetProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 12).Draw(t, "capacity")
		depth := rapid.IntRange(0, 6).Draw(t, "depth")
		q := NewQuadtree[*box](Rect{W: 1000, H: 800}, capacity, depth)

		n := rapid.IntRange(0, 200).Draw(t, "n")
		all := make([]*box, n)
		for i := range all {
			x := rapid.Float64Range(-50, 1000).Draw(t, "x")
			y := rapid.Float64Range(-50, 800).Draw(t, "y")
			w := rapid.Float64Range(1, 60).Draw(t, "w")
			h := rapid.Float64Range(1, 60).Draw(t, "h")
			all[i] = newBox(i, x, y, w, h)
			q.Insert(all[i])
		}

		query := Rect{
			X: rapid.Float64Range(-100, 1000).Draw(t, "qx"),
			Y: rapid.Float64Range(-100, 800).Draw(t, "qy"),
			W: rapid.Float64Range(1, 400).Draw(t, "qw"),
			H: rapid.Float64Range(1, 400).Draw(t, "qh"),
		}
		got := ids(q.Retrieve(query, nil))
		for _, b := range all {
			if b.r.Overlaps(query) && !got[b.id] {
				t.Fatalf("object %d overlaps %+v but was not retrieved", b.id, query)
			}
		}
	})
}
