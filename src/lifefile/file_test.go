package lifefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"colonylife/src/colony"
)

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"glider.lif":     FormatRunLength,
		"dir/GLIDER.LIF": FormatRunLength,
		"colony.col":     FormatPlain,
		"colony.txt":     FormatPlain,
	}
	for name, expected := range tests {
		f, err := FormatOf(name)
		if err != nil || f != expected {
			t.Errorf("FormatOf(%q) = %v, %v, expected %v", name, f, err, expected)
		}
	}
	for _, name := range []string{"colony", "colony.rle", "colony.col.bak"} {
		if _, err := FormatOf(name); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatOf(%q) expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	g := colony.GridFromRows([][]bool{{true, false}, {false, true}, {true, true}})

	path, err := Save(filepath.Join(dir, "saved"), g)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != SaveExt {
		t.Fatalf("saved to %q, expected the %s extension", path, SaveExt)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "*.\n.*\n**" {
		t.Fatalf("saved %q", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Equal(g) {
		t.Fatalf("loaded\n%vexpected\n%v", loaded, g)
	}

	again, err := Save(path, g)
	if err != nil || again != path {
		t.Fatalf("saving to %q wrote %q, %v", path, again, err)
	}
}

func TestLoadRunLengthAddsBorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinker.lif")
	if err := os.WriteFile(path, []byte("#N Blinker\nx = 3, y = 1\n3o!\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Rows() != 1+2*DefaultBorder || g.Cols() != 3+2*DefaultBorder {
		t.Fatalf("dimensions %vx%v", g.Rows(), g.Cols())
	}
	if g.LiveCells() != 3 || !g.Alive(DefaultBorder, DefaultBorder+2) {
		t.Fatal("pattern misplaced")
	}
}

func TestLoadFileWithDecoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glider.lif")
	if err := os.WriteFile(path, []byte("#N Glider\nx = 3, y = 3\nbo$2bo$3o!\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := RunLengthDecoder{Border: 1}
	g, err := LoadFile(path, &d)
	if err != nil {
		t.Fatal(err)
	}
	if g.Rows() != 5 || g.Cols() != 5 || g.LiveCells() != 5 || !g.Alive(1, 2) {
		t.Fatalf("unexpected grid\n%v", g)
	}
	if len(d.Comments) != 1 || d.Comments[0] != "#N Glider" {
		t.Fatalf("unexpected comments %q", d.Comments)
	}

	plain, err := Decode("glider.txt", []byte(".*.\n..*\n***"))
	if err != nil {
		t.Fatal(err)
	}
	if !Expand(plain, 1).Equal(g) {
		t.Fatal("plain and run-length glider differ")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.col")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "colony.png")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	path := filepath.Join(dir, "broken.lif")
	if err := os.WriteFile(path, []byte("#C no header"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrMissingDimensionHeader) {
		t.Fatalf("expected ErrMissingDimensionHeader, got %v", err)
	}
}
