package device

import (
	"fmt"
	"sort"
)

// Layout is a geometric arrangement of trap sites a device can realize.
// Layout identity compares coordinate sets, not slugs, so an equivalent
// layout built through a different constructor still matches a
// pre-calibrated one.
type Layout struct {
	slug  string
	traps [][2]float64
}

// FreeLayout creates an arbitrary layout from explicit trap coordinates.
func FreeLayout(traps [][2]float64, slug string) *Layout {
	if slug == "" {
		slug = fmt.Sprintf("FreeLayout(%d)", len(traps))
	}
	return &Layout{slug: slug, traps: copyCoords(traps)}
}

// SquareLayout creates a square lattice of rows x columns traps with uniform
// spacing.
func SquareLayout(rows, columns int, spacing float64) *Layout {
	return &Layout{
		slug:  fmt.Sprintf("SquareLatticeLayout(%dx%d, %gµm)", rows, columns, spacing),
		traps: rectangularTraps(rows, columns, spacing, spacing),
	}
}

// RectangularLayout creates a rectangular lattice with distinct column and
// row spacings.
func RectangularLayout(rows, columns int, colSpacing, rowSpacing float64) *Layout {
	return &Layout{
		slug: fmt.Sprintf("RectangularLatticeLayout(%dx%d, %gx%gµm)",
			rows, columns, colSpacing, rowSpacing),
		traps: rectangularTraps(rows, columns, colSpacing, rowSpacing),
	}
}

// TriangularLayout creates a triangular lattice filled row by row until
// nTraps sites exist, with the given spacing between neighbors.
func TriangularLayout(nTraps int, spacing float64) *Layout {
	traps := make([][2]float64, 0, nTraps)
	// Fill rows of ceil(sqrt(n)) sites, alternate rows offset by half a
	// spacing.
	side := 1
	for side*side < nTraps {
		side++
	}
	row := 0
	for len(traps) < nTraps {
		offset := 0.0
		if row%2 == 1 {
			offset = spacing / 2
		}
		for col := 0; col < side && len(traps) < nTraps; col++ {
			traps = append(traps, [2]float64{
				float64(col)*spacing + offset,
				float64(row) * spacing * 0.8660254037844386,
			})
		}
		row++
	}
	center(traps)
	return &Layout{
		slug:  fmt.Sprintf("TriangularLatticeLayout(%d, %gµm)", nTraps, spacing),
		traps: traps,
	}
}

func rectangularTraps(rows, columns int, colSpacing, rowSpacing float64) [][2]float64 {
	traps := make([][2]float64, 0, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			traps = append(traps, [2]float64{float64(c) * colSpacing, float64(r) * rowSpacing})
		}
	}
	center(traps)
	return traps
}

// center shifts trap coordinates so their centroid is the origin.
func center(traps [][2]float64) {
	if len(traps) == 0 {
		return
	}
	var cx, cy float64
	for _, t := range traps {
		cx += t[0]
		cy += t[1]
	}
	cx /= float64(len(traps))
	cy /= float64(len(traps))
	for i := range traps {
		traps[i][0] -= cx
		traps[i][1] -= cy
	}
}

// Slug returns the layout's identification slug.
func (l *Layout) Slug() string { return l.slug }

// Traps returns the trap coordinates.
func (l *Layout) Traps() [][2]float64 { return copyCoords(l.traps) }

// NumTraps returns the number of trap sites.
func (l *Layout) NumTraps() int { return len(l.traps) }

// Equal reports whether two layouts realize the same coordinate set.
func (l *Layout) Equal(other *Layout) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.traps) != len(other.traps) {
		return false
	}
	a, b := l.Traps(), other.Traps()
	sortCoords(a)
	sortCoords(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyCoords(cs [][2]float64) [][2]float64 {
	out := make([][2]float64, len(cs))
	copy(out, cs)
	return out
}

func sortCoords(cs [][2]float64) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i][0] != cs[j][0] {
			return cs[i][0] < cs[j][0]
		}
		return cs[i][1] < cs[j][1]
	})
}
