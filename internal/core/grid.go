package core

// Grid stores a 2D grid of float64 cell values in row-major order (row = y).
type Grid struct {
	W, H int
	data []float64
}

// NewGrid allocates a grid with the given dimensions, every cell set to fill.
func NewGrid(w, h int, fill float64) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{W: w, H: h, data: make([]float64, w*h)}
	if fill != 0 {
		g.Fill(fill)
	}
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *Grid) At(x, y int) float64 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.W+x] = v }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CopyRow overwrites row dst with the contents of row src.
func (g *Grid) CopyRow(dst, src int) {
	copy(g.data[dst*g.W:(dst+1)*g.W], g.data[src*g.W:(src+1)*g.W])
}

// CopyCol overwrites column dst with the contents of column src.
func (g *Grid) CopyCol(dst, src int) {
	for y := 0; y < g.H; y++ {
		g.data[y*g.W+dst] = g.data[y*g.W+src]
	}
}

// Scale multiplies every cell by f.
func (g *Grid) Scale(f float64) {
	for i := range g.data {
		g.data[i] *= f
	}
}

// Max returns the largest cell value, or 0 for an empty grid.
func (g *Grid) Max() float64 {
	if len(g.data) == 0 {
		return 0
	}
	m := g.data[0]
	for _, v := range g.data[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: append([]float64(nil), g.data...)}
}
