package lifefile

import (
	"errors"
	"fmt"
)

//Format names the encoding of a colony file
type Format string

const (
	FormatPlain     Format = "plain"      //'*' and '.' per cell, .col and .txt files
	FormatRunLength Format = "run-length" //.lif files
)

var (
	ErrEmptyInput             = errors.New("empty input")
	ErrMissingDimensionHeader = errors.New("missing x=<width>, y=<height> header")
	ErrInvalidDimension       = errors.New("invalid dimension")
	ErrMalformedRun           = errors.New("malformed run")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
)

//DecodeError describes why the data could not be decoded
//Line is 1-based, 0 means the error is not bound to a line
type DecodeError struct {
	Format Format
	Line   int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s decode: line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("%s decode: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
