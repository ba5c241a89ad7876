package store

import (
	"maps"
	"slices"
)

// Entity is a server-managed record with a stable id.
type Entity interface {
	EntityID() int64
}

// Table is an immutable id→entity map. Mutating methods return a new *Table
// and leave the receiver untouched; when nothing changes they return the
// receiver itself. A nil *Table is an empty table.
type Table[V Entity] struct {
	rows map[int64]V
}

// NewTable builds a table from rows; later rows win on duplicate ids.
func NewTable[V Entity](rows ...V) *Table[V] {
	var t *Table[V]
	return t.Put(rows...)
}

func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *Table[V]) Get(id int64) (V, bool) {
	if t == nil {
		var zero V
		return zero, false
	}
	v, ok := t.rows[id]
	return v, ok
}

func (t *Table[V]) Has(id int64) bool {
	_, ok := t.Get(id)
	return ok
}

// IDs returns the keys in ascending order.
func (t *Table[V]) IDs() []int64 {
	if t == nil {
		return []int64{}
	}
	return slices.Sorted(maps.Keys(t.rows))
}

// Values returns the entities ordered by ascending id.
func (t *Table[V]) Values() []V {
	ids := t.IDs()
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *Table[V]) clone(extra int) map[int64]V {
	next := make(map[int64]V, t.Len()+extra)
	if t != nil {
		maps.Copy(next, t.rows)
	}
	return next
}

// Put upserts rows keyed by their id, replacing any existing entry.
func (t *Table[V]) Put(rows ...V) *Table[V] {
	if len(rows) == 0 && t != nil {
		return t
	}
	next := t.clone(len(rows))
	for _, r := range rows {
		next[r.EntityID()] = r
	}
	return &Table[V]{rows: next}
}

// Remove drops ids. Absent ids are ignored.
func (t *Table[V]) Remove(ids ...int64) *Table[V] {
	present := false
	for _, id := range ids {
		if t.Has(id) {
			present = true
			break
		}
	}
	if !present {
		return t
	}
	next := t.clone(0)
	for _, id := range ids {
		delete(next, id)
	}
	return &Table[V]{rows: next}
}

// Update replaces the entry for id with fn(entry). Absent ids are a no-op.
func (t *Table[V]) Update(id int64, fn func(V) V) *Table[V] {
	cur, ok := t.Get(id)
	if !ok {
		return t
	}
	next := t.clone(0)
	next[id] = fn(cur)
	return &Table[V]{rows: next}
}

// MergeByID merges incoming into existing keyed by id: entries already present
// are replaced in place with the incoming version, new ones are appended in
// incoming order, and duplicates within incoming collapse to the last one.
// existing is never modified; with nothing incoming it is returned as is.
func MergeByID[V Entity](existing, incoming []V) []V {
	if len(incoming) == 0 {
		return existing
	}
	out := make([]V, 0, len(existing)+len(incoming))
	out = append(out, existing...)
	pos := make(map[int64]int, len(out)+len(incoming))
	for i, e := range out {
		pos[e.EntityID()] = i
	}
	for _, in := range incoming {
		id := in.EntityID()
		if i, ok := pos[id]; ok {
			out[i] = in
			continue
		}
		pos[id] = len(out)
		out = append(out, in)
	}
	return out
}

// RemoveByID returns entities without id, or entities itself when id is absent.
func RemoveByID[V Entity](entities []V, id int64) []V {
	idx := slices.IndexFunc(entities, func(v V) bool { return v.EntityID() == id })
	if idx < 0 {
		return entities
	}
	out := make([]V, 0, len(entities)-1)
	out = append(out, entities[:idx]...)
	return append(out, entities[idx+1:]...)
}
