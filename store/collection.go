// ABOUTME: Generic ordered in-memory collection shared by every entity store
// ABOUTME: Assigns monotonic integer ids and preserves insertion order
package store

// collection holds entities in insertion order. lastID is a high-water mark so
// ids are never reused, even after the highest id is deleted.
type collection[T any] struct {
	items  []T
	lastID int
	idOf   func(*T) *int
}

func newCollection[T any](idOf func(*T) *int, seed []T) *collection[T] {
	c := &collection[T]{idOf: idOf}
	for _, item := range seed {
		if id := *idOf(&item); id > c.lastID {
			c.lastID = id
		}
		c.items = append(c.items, item)
	}
	return c
}

func (c *collection[T]) create(item T) T {
	c.lastID++
	*c.idOf(&item) = c.lastID
	c.items = append(c.items, item)
	return item
}

func (c *collection[T]) index(id int) int {
	for i := range c.items {
		if *c.idOf(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) find(id int) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// update replaces the entity in place. The stored id always wins over item's.
func (c *collection[T]) update(id int, item T) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	*c.idOf(&item) = id
	c.items[i] = item
	return item, true
}

// modify applies fn to the stored entity and returns the result.
func (c *collection[T]) modify(id int, fn func(*T)) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	fn(&c.items[i])
	*c.idOf(&c.items[i]) = id
	return c.items[i], true
}

func (c *collection[T]) remove(id int) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return removed, true
}

func (c *collection[T]) all() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) filter(match func(T) bool) []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *collection[T]) len() int {
	return len(c.items)
}
