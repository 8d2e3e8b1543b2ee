package score

// indexer gives a unique index to a pair of attributes (e.g. timeslot and room) and vice versa
type indexer struct {
	rows    int
	columns int
}

func newIndexer(rows, columns int) indexer {
	return indexer{rows: rows, columns: columns}
}

// Returns a unique index to the pair of attributes
func (i indexer) Index(row, column int) int {
	return column + i.columns*row
}

// Returns the pair of attributes from a unique index
func (i indexer) Attributes(index int) (row, column int) {
	return index / i.columns, index % i.columns
}

func (i indexer) Size() int {
	return i.rows * i.columns
}
