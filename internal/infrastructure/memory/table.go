package memory

// table colección ordenada por inserción. Los valores guardados se tratan como
// inmutables: los repos copian al escribir y al leer.
type table[T any] struct {
	order []string
	rows  map[string]*T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]*T{}}
}

// clone copia superficial: nuevo índice, mismos punteros (inmutables).
func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		order: make([]string, len(t.order)),
		rows:  make(map[string]*T, len(t.rows)),
	}
	copy(c.order, t.order)
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

func (t *table[T]) get(id string) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *table[T]) all() []*T {
	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}
