package colony

import (
	"math/rand/v2"
	"strings"
)

//Grid is a rectangular field of cells stored row by row in one flat buffer
//cells outside the field are always dead
type Grid struct {
	rows  int
	cols  int
	cells []bool
}

//NewGrid allocates a dead grid, non-positive dimensions are raised to 1
func NewGrid(rows int, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

//GridFromRows builds the grid from a slice of rows, short rows are padded with dead cells
func GridFromRows(rows [][]bool) *Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	g := NewGrid(len(rows), cols)
	for row, r := range rows {
		for col, v := range r {
			g.Set(row, col, v)
		}
	}
	return g
}

//RandomGrid generates the grid where every cell is alive with the given probability
func RandomGrid(rows int, cols int, density float64, rng *rand.Rand) *Grid {
	g := NewGrid(rows, cols)
	for i := range g.cells {
		g.cells[i] = rng.Float64() < density
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

//Within reports whether row, col is inside the grid
func (g *Grid) Within(row int, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

//Alive returns the cell state, any coordinate outside the grid reads as dead
func (g *Grid) Alive(row int, col int) bool {
	if !g.Within(row, col) {
		return false
	}
	return g.cells[row*g.cols+col]
}

//Set changes the cell state, writes outside the grid are dropped
func (g *Grid) Set(row int, col int, alive bool) {
	if !g.Within(row, col) {
		return
	}
	g.cells[row*g.cols+col] = alive
}

//Neighbours counts live cells of the Moore neighbourhood
func (g *Grid) Neighbours(row int, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.Alive(row+dr, col+dc) {
				n++
			}
		}
	}
	return n
}

//LiveCells counts alive cells
func (g *Grid) LiveCells() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

//Clone returns the deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

//Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) String() string {
	var b strings.Builder
	b.WriteString("Colony:\n")
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.Alive(row, col) {
				b.WriteByte('*')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
