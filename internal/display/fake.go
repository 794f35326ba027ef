package display

import "strings"

// FakeSurface is a test double implementing the same surface contract as
// LCD, backed by an in-memory character grid.
type FakeSurface struct {
	Cols, Rows int

	// Powered mirrors the display power state.
	Powered bool

	// Clears counts Clear calls.
	Clears int

	// Ops records every surface operation in order, for asserting side
	// effect sequences ("clear", "write", "on", "off").
	Ops []string

	cells [][]rune
}

// NewFakeSurface creates a 16x2 fake surface.
func NewFakeSurface() *FakeSurface {
	f := &FakeSurface{Cols: 16, Rows: 2}
	f.reset()
	return f
}

func (f *FakeSurface) reset() {
	f.cells = make([][]rune, f.Rows)
	for r := range f.cells {
		f.cells[r] = make([]rune, f.Cols)
		for c := range f.cells[r] {
			f.cells[r][c] = ' '
		}
	}
}

// Clear blanks the grid.
func (f *FakeSurface) Clear() {
	f.Clears++
	f.Ops = append(f.Ops, "clear")
	f.reset()
}

// WriteAt writes text at (col, row), clipped like the real display.
func (f *FakeSurface) WriteAt(col, row int, text string) {
	f.Ops = append(f.Ops, "write")
	if row < 0 || row >= f.Rows || col < 0 || col >= f.Cols {
		return
	}
	for i, r := range []rune(text) {
		if col+i >= f.Cols {
			break
		}
		f.cells[row][col+i] = r
	}
}

// PowerOn asserts power.
func (f *FakeSurface) PowerOn() {
	f.Ops = append(f.Ops, "on")
	f.Powered = true
}

// PowerOff deasserts power.
func (f *FakeSurface) PowerOff() {
	f.Ops = append(f.Ops, "off")
	f.Powered = false
}

// Line returns row content with trailing blanks trimmed.
func (f *FakeSurface) Line(row int) string {
	if row < 0 || row >= f.Rows {
		return ""
	}
	return strings.TrimRight(string(f.cells[row]), " ")
}

// Reset clears recorded state.
func (f *FakeSurface) Reset() {
	f.Powered = false
	f.Clears = 0
	f.Ops = nil
	f.reset()
}
