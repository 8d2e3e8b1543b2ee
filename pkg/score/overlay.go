package score

type change struct {
	key   int
	delta int
}

// overlay records pending bucket changes on top of an index without touching it, so that several evaluations can read the same index concurrently
type overlay struct {
	changes    [cellKinds][]change
	unassigned int
}

func (o *overlay) add(kind cellKind, key, delta int) {
	for i := range o.changes[kind] {
		if o.changes[kind][i].key == key {
			o.changes[kind][i].delta += delta
			return
		}
	}
	o.changes[kind] = append(o.changes[kind], change{key: key, delta: delta})
}

func (o *overlay) addUnassigned(delta int) {
	o.unassigned += delta
}

// Returns the pending change of a bucket
func (o *overlay) delta(kind cellKind, key int) int {
	for _, change := range o.changes[kind] {
		if change.key == key {
			return change.delta
		}
	}
	return 0
}

// Returns the count a bucket would hold once the overlay is applied
func (o *overlay) count(idx *index, kind cellKind, key int) int {
	return idx.counts[kind][key] + o.delta(kind, key)
}
