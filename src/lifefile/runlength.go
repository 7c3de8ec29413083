package lifefile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"colonylife/src/colony"
)

//DefaultBorder is the dead margin added around every run-length pattern
const DefaultBorder = 50

//RunLengthDecoder reads .lif files:
//
//	#N Glider
//	x = 3, y = 3
//	bo$2bo$3o!
//
//'#' lines are comments, the first other line holds the dimensions.
//The body is split by '$' into rows: 'o' is a live cell, 'b' a dead one,
//a number repeats the following cell or, at the end of the row, counts blank rows.
//'!' ends the pattern.
type RunLengthDecoder struct {
	Border   int      //dead margin added on every side of the decoded pattern
	Strict   bool     //report ErrMalformedRun for a count not followed by 'o', 'b' or the row end
	Comments []string //comment lines of the last decoded file
}

//DecodeRunLength decodes the .lif data and pads the pattern with border dead cells
func DecodeRunLength(data []byte, border int) (*colony.Grid, error) {
	d := RunLengthDecoder{Border: border}
	return d.Decode(data)
}

//Decode builds a fresh grid from data
func (d *RunLengthDecoder) Decode(data []byte) (*colony.Grid, error) {
	d.Comments = nil
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Format: FormatRunLength, Err: ErrEmptyInput}
	}
	width, height, body, line, err := d.header(data)
	if err != nil {
		return nil, err
	}

	g := colony.NewGrid(height, width)
	if err = d.body(g, body, line); err != nil {
		return nil, err
	}
	return Expand(g, d.Border), nil
}

//header skips the comments and parses the dimensions line
//returns the data following that line and the number of the line
func (d *RunLengthDecoder) header(data []byte) (width int, height int, rest []byte, line int, err error) {
	rest = data
	for len(rest) > 0 {
		var l []byte
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			l, rest = rest[:i], rest[i+1:]
		} else {
			l, rest = rest, nil
		}
		line++
		l = bytes.TrimSpace(l)
		if len(l) == 0 {
			continue
		}
		if l[0] == '#' {
			d.Comments = append(d.Comments, string(l))
			continue
		}
		width, height, err = parseDimensions(string(l))
		if err != nil {
			err = &DecodeError{Format: FormatRunLength, Line: line, Err: err}
		}
		return
	}
	err = &DecodeError{Format: FormatRunLength, Line: line, Err: ErrMissingDimensionHeader}
	return
}

//parseDimensions reads "x = 3, y = 2, rule = B3/S23", keys other than x and y are ignored
func parseDimensions(s string) (width int, height int, err error) {
	var x, y string
	for _, tok := range strings.Split(strings.ReplaceAll(s, " ", ""), ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(tok), "=")
		if !ok {
			continue
		}
		switch key {
		case "x":
			x = value
		case "y":
			if x == "" {
				return 0, 0, fmt.Errorf("%w: y before x", ErrMissingDimensionHeader)
			}
			y = value
		}
	}
	if x == "" || y == "" {
		return 0, 0, ErrMissingDimensionHeader
	}
	if width, err = parseDimension(x); err != nil {
		return 0, 0, fmt.Errorf("x: %w", err)
	}
	if height, err = parseDimension(y); err != nil {
		return 0, 0, fmt.Errorf("y: %w", err)
	}
	return
}

func parseDimension(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, s)
	}
	return n, nil
}

//body fills g row by row, line is the number of the header line
func (d *RunLengthDecoder) body(g *colony.Grid, body []byte, line int) error {
	line++
	row := 0
	for _, tok := range bytes.Split(body, []byte{'$'}) {
		if row >= g.Rows() {
			break
		}
		rows, done, err := d.decodeRow(g, row, tok, &line)
		if err != nil || done {
			return err
		}
		row += rows
	}
	return nil
}

//decodeRow decodes one '$' separated token into the row
//returns how many rows the token covers and whether '!' was reached
func (d *RunLengthDecoder) decodeRow(g *colony.Grid, row int, tok []byte, line *int) (rows int, done bool, err error) {
	rows = 1
	col := 0
	for i := 0; i < len(tok); i++ {
		switch ch := tok[i]; {
		case ch == 'o' || ch == 'b':
			g.Set(row, col, ch == 'o')
			col++
		case ch == '!':
			return rows, true, nil
		case ch == '\n':
			*line++
		case isDigit(ch):
			j := i
			for j < len(tok) && isDigit(tok[j]) {
				j++
			}
			n, convErr := strconv.Atoi(string(tok[i:j]))
			if convErr != nil {
				return 0, false, &DecodeError{Format: FormatRunLength, Line: *line, Err: fmt.Errorf("%w: %v", ErrMalformedRun, convErr)}
			}
			switch {
			case j == len(tok):
				//blank rows, the '$' itself counts for one
				if n > 1 {
					rows += min(n-1, g.Rows())
				}
				i = j - 1
			case tok[j] == 'o' || tok[j] == 'b':
				alive := tok[j] == 'o'
				for k := 0; k < n && col+k < g.Cols(); k++ {
					g.Set(row, col+k, alive)
				}
				col += min(n, g.Cols())
				i = j
			default:
				if d.Strict {
					return 0, false, &DecodeError{Format: FormatRunLength, Line: *line, Err: fmt.Errorf("%w: %q followed by %q", ErrMalformedRun, tok[i:j], tok[j])}
				}
				i = j - 1
			}
		}
	}
	return rows, false, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

//Expand returns g surrounded by size dead cells on every side, g itself when size is not positive
func Expand(g *colony.Grid, size int) *colony.Grid {
	if size <= 0 {
		return g
	}
	expanded := colony.NewGrid(g.Rows()+size*2, g.Cols()+size*2)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if g.Alive(row, col) {
				expanded.Set(size+row, size+col, true)
			}
		}
	}
	return expanded
}
