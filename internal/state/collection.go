package state

// collection keeps records in an explicit display order with constant-time id
// lookups, so event handlers never rescan the whole list to find a record.
type collection[T any] struct {
	byID  map[string]T
	order []string
	idOf  func(T) string
}

func newCollection[T any](idOf func(T) string) *collection[T] {
	return &collection[T]{
		byID: make(map[string]T),
		idOf: idOf,
	}
}

// replace swaps the full contents for a fresh server listing.
func (c *collection[T]) replace(items []T) {
	c.byID = make(map[string]T, len(items))
	c.order = make([]string, 0, len(items))
	for _, item := range items {
		id := c.idOf(item)
		if _, dup := c.byID[id]; dup {
			continue
		}
		c.byID[id] = item
		c.order = append(c.order, id)
	}
}

// prepend inserts at the front, replacing in place if the id already exists.
func (c *collection[T]) prepend(item T) {
	id := c.idOf(item)
	if _, ok := c.byID[id]; ok {
		c.byID[id] = item
		return
	}
	c.byID[id] = item
	c.order = append([]string{id}, c.order...)
}

// append adds at the end, replacing in place if the id already exists.
func (c *collection[T]) append(item T) {
	id := c.idOf(item)
	if _, ok := c.byID[id]; ok {
		c.byID[id] = item
		return
	}
	c.byID[id] = item
	c.order = append(c.order, id)
}

// prependIfAbsent inserts at the front only when the id is new, reporting
// whether an insert happened. Duplicate delivery becomes a no-op.
func (c *collection[T]) prependIfAbsent(item T) bool {
	id := c.idOf(item)
	if _, ok := c.byID[id]; ok {
		return false
	}
	c.byID[id] = item
	c.order = append([]string{id}, c.order...)
	return true
}

// set replaces an existing record in place, reporting whether it was present.
// Records for ids we do not hold are ignored, not inserted.
func (c *collection[T]) set(item T) bool {
	id := c.idOf(item)
	if _, ok := c.byID[id]; !ok {
		return false
	}
	c.byID[id] = item
	return true
}

func (c *collection[T]) get(id string) (T, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// remove drops a record by id, reporting whether it was present.
func (c *collection[T]) remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// removeWhere drops every record matching the predicate and returns how many
// were removed. Order of the survivors is preserved.
func (c *collection[T]) removeWhere(pred func(T) bool) int {
	kept := c.order[:0]
	removed := 0
	for _, id := range c.order {
		if pred(c.byID[id]) {
			delete(c.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return removed
}

// items returns the records in display order.
func (c *collection[T]) items() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *collection[T]) len() int {
	return len(c.order)
}
