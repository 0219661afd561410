package responsive

// NoColumn is returned once a traversal steps outside the table.
const NoColumn = -1

// Traversal orders columns for the collapse pass and, inverted, for the
// expand pass.
type Traversal struct {
	start Start
	step  int
	max   int
}

func NewTraversal(start Start, dir Direction, max int) Traversal {
	step := -1
	if dir == LTR {
		step = 1
	}
	return Traversal{start: start, step: step, max: max}
}

// Initial returns the first column to visit. The inverse traversal starts
// from the opposite end: a valid explicit start n becomes max-n.
func (t Traversal) Initial(inverse bool) int {
	if t.max <= 0 {
		return NoColumn
	}
	switch t.start.Kind {
	case StartFirst:
		if inverse {
			return t.max - 1
		}
		return 0
	case StartIndex:
		if n := t.start.Index; n > 0 && n < t.max {
			if inverse {
				return t.max - n
			}
			return n
		}
	}
	if inverse {
		return 0
	}
	return t.max - 1
}

// Next returns the column after pos, or NoColumn.
func (t Traversal) Next(pos int, inverse bool) int {
	step := t.step
	if inverse {
		step = -step
	}
	pos += step
	if pos < 0 || pos >= t.max {
		return NoColumn
	}
	return pos
}

// Order lists the columns a full traversal visits.
func (t Traversal) Order(inverse bool) []int {
	var out []int
	for pos := t.Initial(inverse); pos != NoColumn && len(out) < t.max; pos = t.Next(pos, inverse) {
		out = append(out, pos)
	}
	return out
}
