package annotation

// DefaultProximity is the maximum column distance at which a near-miss cursor
// position still resolves to a model reference. A human cursor is rarely
// column-exact, so resolution is "close enough" rather than strict containment.
const DefaultProximity = 10

// ResolveAt returns the model reference under or nearest to the given cursor
// position, or nil if none is within maxDistance columns. Row is 1-indexed;
// col is a 0-indexed byte column. A position inside a reference's column span
// is an exact hit and returns immediately; otherwise the nearest reference on
// that exact row wins, but only within maxDistance. maxDistance <= 0 selects
// DefaultProximity.
func ResolveAt(fields []Field, row, col, maxDistance int) *ModelRef {
	if maxDistance <= 0 {
		maxDistance = DefaultProximity
	}

	var nearest *ModelRef
	nearestDist := maxDistance + 1

	for i := range fields {
		for j := range fields[i].Models {
			ref := &fields[i].Models[j]
			if ref.Line != row {
				continue
			}
			if col >= ref.ColumnStart && col <= ref.ColumnEnd {
				out := *ref
				return &out
			}

			dist := ref.ColumnStart - col
			if col > ref.ColumnEnd {
				dist = col - ref.ColumnEnd
			}
			if dist < nearestDist {
				nearestDist = dist
				nearest = ref
			}
		}
	}

	if nearest == nil {
		return nil
	}
	out := *nearest
	return &out
}
