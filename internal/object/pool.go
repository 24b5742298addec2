package object

import "github.com/tomz197/survivors/internal/physics"

// EnemyRegistry owns every enemy instance: the live set and the free list.
// An instance is in exactly one of the two at any time.
type EnemyRegistry struct {
	live      []*Enemy
	free      []*Enemy
	allocated int
}

// NewEnemyRegistry creates a registry with room for capacity enemies.
func NewEnemyRegistry(capacity int) *EnemyRegistry {
	return &EnemyRegistry{
		live: make([]*Enemy, 0, capacity),
		free: make([]*Enemy, 0, capacity),
	}
}

// Spawn takes an instance from the free list (or allocates one), fully
// re-initializes it at pos and adds it to the live set.
func (r *EnemyRegistry) Spawn(pos physics.Vec2, speed float64) *Enemy {
	var e *Enemy
	if n := len(r.free); n > 0 {
		e = r.free[n-1]
		r.free[n-1] = nil
		r.free = r.free[:n-1]
	} else {
		e = &Enemy{}
		r.allocated++
	}

	e.Reset(pos, speed)
	e.live = true
	e.slot = len(r.live)
	r.live = append(r.live, e)
	return e
}

// Release removes e from the live set and appends it to the free list.
// Releasing a pooled instance is a no-op and returns false.
func (r *EnemyRegistry) Release(e *Enemy) bool {
	if e == nil || !e.live {
		return false
	}

	// Swap-remove keeps removal O(1); the moved enemy takes over the slot
	last := len(r.live) - 1
	moved := r.live[last]
	r.live[e.slot] = moved
	moved.slot = e.slot
	r.live[last] = nil
	r.live = r.live[:last]

	e.live = false
	e.slot = -1
	r.free = append(r.free, e)
	return true
}

// ReleaseAll returns every live enemy to the free list.
func (r *EnemyRegistry) ReleaseAll() {
	for len(r.live) > 0 {
		r.Release(r.live[len(r.live)-1])
	}
}

// Live returns the live enemies. The slice is owned by the registry and is
// invalidated by Spawn and Release.
func (r *EnemyRegistry) Live() []*Enemy {
	return r.live
}

// Count returns the number of live enemies.
func (r *EnemyRegistry) Count() int {
	return len(r.live)
}

// Pooled returns the number of instances waiting in the free list.
func (r *EnemyRegistry) Pooled() int {
	return len(r.free)
}

// Allocated returns how many instances were ever created.
func (r *EnemyRegistry) Allocated() int {
	return r.allocated
}

// InFreeList reports whether e is currently pooled.
func (r *EnemyRegistry) InFreeList(e *Enemy) bool {
	for _, f := range r.free {
		if f == e {
			return true
		}
	}
	return false
}
