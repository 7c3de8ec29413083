package lifefile

import (
	"bytes"

	"colonylife/src/colony"
)

const (
	liveChar = '*'
	deadChar = '.'
)

//DecodePlain reads the grid where every line is a row and '*' marks a live cell
//the first line sets the number of columns, shorter lines are padded with dead cells
func DecodePlain(data []byte) (*colony.Grid, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Format: FormatPlain, Err: ErrEmptyInput}
	}
	lines := bytes.Split(data, []byte{'\n'})
	for i := range lines {
		lines[i] = bytes.TrimSuffix(lines[i], []byte{'\r'})
	}
	cols := len(lines[0])
	if cols == 0 {
		return nil, &DecodeError{Format: FormatPlain, Line: 1, Err: ErrInvalidDimension}
	}

	g := colony.NewGrid(len(lines), cols)
	for row, line := range lines {
		for col := 0; col < cols && col < len(line); col++ {
			if line[col] == liveChar {
				g.Set(row, col, true)
			}
		}
	}
	return g, nil
}

//EncodePlain writes one character per cell, rows are separated by line feeds
//the last row has no line feed
func EncodePlain(g *colony.Grid) []byte {
	var b bytes.Buffer
	b.Grow(g.Rows() * (g.Cols() + 1))
	for row := 0; row < g.Rows(); row++ {
		//line feed char
		if row != 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.Cols(); col++ {
			if g.Alive(row, col) {
				b.WriteByte(liveChar)
			} else {
				b.WriteByte(deadChar)
			}
		}
	}
	return b.Bytes()
}
