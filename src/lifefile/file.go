package lifefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"colonylife/src/colony"
)

//SaveExt is the extension of saved colonies
const SaveExt = ".col"

//FormatOf picks the format by the file name extension
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".lif":
		return FormatRunLength, nil
	case ".col", ".txt":
		return FormatPlain, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(name))
}

//Decode decodes data according to the extension of name
//run-length patterns get the DefaultBorder margin
func Decode(name string, data []byte) (*colony.Grid, error) {
	return decode(name, data, &RunLengthDecoder{Border: DefaultBorder})
}

func decode(name string, data []byte, d *RunLengthDecoder) (*colony.Grid, error) {
	f, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	if f == FormatRunLength {
		return d.Decode(data)
	}
	return DecodePlain(data)
}

//Load reads the colony file, run-length patterns get the DefaultBorder margin
func Load(path string) (*colony.Grid, error) {
	return LoadFile(path, &RunLengthDecoder{Border: DefaultBorder})
}

//LoadFile reads the colony file, run-length patterns are read by d
func LoadFile(path string, d *RunLengthDecoder) (*colony.Grid, error) {
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load colony: %w", err)
	}
	g, err := decode(path, data, d)
	if err != nil {
		return nil, fmt.Errorf("load colony %s: %w", path, err)
	}
	return g, nil
}

//Save writes g in the plain format, SaveExt is appended to path when missing
//returns the path actually written
func Save(path string, g *colony.Grid) (string, error) {
	if !strings.HasSuffix(path, SaveExt) {
		path += SaveExt
	}
	if err := os.WriteFile(path, EncodePlain(g), 0o644); err != nil {
		return "", fmt.Errorf("save colony: %w", err)
	}
	return path, nil
}
