package ecs

// Arena owns values behind stable generational handles. Iteration follows
// spawn order; Sweep compacts that order in place so the live list is never
// reallocated by a per-frame filter.
type Arena[T any] struct {
	entities entityStore
	values   SparseSet[*T]
	order    []Entity
}

// Spawn stores v and returns its handle.
func (a *Arena[T]) Spawn(v *T) Entity {
	if a == nil || v == nil {
		return 0
	}
	e := a.entities.create()
	a.values.Set(e.id(), v)
	a.order = append(a.order, e)
	return e
}

// Get resolves a handle. Destroyed or stale handles report false.
func (a *Arena[T]) Get(e Entity) (*T, bool) {
	if a == nil || !a.entities.isAlive(e) {
		return nil, false
	}
	return a.values.Get(e.id())
}

// IsAlive reports whether e still refers to a stored value.
func (a *Arena[T]) IsAlive(e Entity) bool {
	return a != nil && a.entities.isAlive(e)
}

// Destroy removes the value behind e. The spawn-order list is compacted on
// the next Sweep.
func (a *Arena[T]) Destroy(e Entity) bool {
	if a == nil || !a.entities.destroy(e) {
		return false
	}
	a.values.Remove(e.id())
	return true
}

// Each visits live values in spawn order. Values spawned during the visit
// are not visited until the next call.
func (a *Arena[T]) Each(fn func(e Entity, v *T)) {
	if a == nil || fn == nil {
		return
	}
	n := len(a.order)
	for i := 0; i < n; i++ {
		e := a.order[i]
		v, ok := a.Get(e)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// Sweep destroys every value keep rejects and drops dead handles from the
// spawn order. It returns how many values were destroyed.
func (a *Arena[T]) Sweep(keep func(v *T) bool) int {
	if a == nil {
		return 0
	}
	removed := 0
	live := a.order[:0]
	for _, e := range a.order {
		v, ok := a.Get(e)
		if !ok {
			continue
		}
		if keep != nil && !keep(v) {
			a.Destroy(e)
			removed++
			continue
		}
		live = append(live, e)
	}
	clear(a.order[len(live):])
	a.order = live
	return removed
}

// Len reports the number of live values.
func (a *Arena[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.values.Len()
}

// Clear destroys everything. Handles issued before Clear stay stale.
func (a *Arena[T]) Clear() {
	if a == nil {
		return
	}
	for _, e := range a.order {
		a.Destroy(e)
	}
	clear(a.order)
	a.order = a.order[:0]
}
