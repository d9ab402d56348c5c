package core

import (
	"strings"
	"testing"
)

// rowText returns row y of the rendered buffer.
func rowText(s *Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", c.Rune, x, y)
			}
		}
	}
}

func TestScreenSetColorBounds(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", c)
	}

	// Out of bounds should be silent
	s.SetColor(-1, 0, 'A', ColorRed)
	s.SetColor(100, 0, 'A', ColorRed)
	s.SetColor(0, -1, 'A', ColorRed)
	s.SetColor(0, 100, 'A', ColorRed)

	if c := s.GetCell(-1, 0); c.Rune != ' ' {
		t.Error("Out of bounds GetCell should return space")
	}
	if c := s.GetCell(100, 0); c.Rune != ' ' {
		t.Error("Out of bounds GetCell should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRectColor(NewRect(0, 0, 10, 10), 'X', ColorCyan)

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("After Clear, expected plain space at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawTextColor(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Hello", ColorCyan)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorCyan {
			t.Errorf("DrawTextColor: expected cyan %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Text should be clipped at boundaries
	s.DrawTextColor(18, 0, "Hello", ColorDefault)
	if rowText(s, 0)[18:] != "He" {
		t.Errorf("Text should be clipped at right boundary, row 0 = %q", rowText(s, 0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	// "Hi" is 2 chars, centered in 20 chars should start at position 9
	if got := rowText(s, 2); got[9:11] != "Hi" {
		t.Errorf("DrawTextCentered failed, row 2 = %q", got)
	}

	// Width is counted in runes
	s.DrawTextCenteredColor(3, "█ █", ColorBlue)
	if c := s.GetCell(8, 3); c.Rune != '█' || c.Color != ColorBlue {
		t.Errorf("DrawTextCenteredColor: unexpected cell at (8, 3): %+v", c)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawTextColor(0, 0, "AAAAA", ColorDefault)
	s.DrawTextColor(0, 1, "BBBBB", ColorDefault)
	s.DrawTextColor(0, 2, "CCCCC", ColorDefault)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorGreen)
	s.DrawTextColor(0, 5, "World", ColorDefault)

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := rowText(s, 0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = rowText(s, 0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
	if s.GetCell(0, 0).Color != ColorGreen {
		t.Error("Resize should keep cell colors")
	}
	if got := rowText(s, 5); strings.TrimSpace(got) != "" {
		t.Errorf("Rows cut by the shrink should come back blank, row 5 = %q", got)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColor(1, 1, "ab", ColorCyan)
	s.SetColor(9, 2, '#', ColorRed)

	if c := s.GetCell(1, 1); c.Rune != 'a' || c.Color != ColorCyan {
		t.Errorf("GetCell(1, 1) = %+v, expected cyan 'a'", c)
	}
	if c := s.GetCell(2, 1); c.Rune != 'b' || c.Color != ColorCyan {
		t.Errorf("GetCell(2, 1) = %+v, expected cyan 'b'", c)
	}
	if c := s.GetCell(9, 2); c.Color != ColorRed {
		t.Errorf("GetCell(9, 2) color = %v, expected red", c.Color)
	}

	// Clear drops colors
	s.Clear()
	if c := s.GetCell(9, 2); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("After Clear, expected plain space, got %+v", c)
	}

	// Out of bounds returns a blank cell
	if c := s.GetCell(-1, 50); c.Rune != ' ' {
		t.Errorf("Out of bounds GetCell should be space, got %q", c.Rune)
	}
}

func TestScreenDrawRectColor(t *testing.T) {
	s := NewScreen(6, 6)
	s.DrawRectColor(NewRect(1, 1, 2, 2), '█', ColorMagenta)

	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			c := s.GetCell(x, y)
			if c.Rune != '█' || c.Color != ColorMagenta {
				t.Errorf("DrawRectColor: unexpected cell at (%d, %d): %+v", x, y, c)
			}
		}
	}
	if s.GetCell(3, 3).Color != ColorDefault {
		t.Error("DrawRectColor should not affect outside area")
	}
}

func TestScreenDrawRectColorClips(t *testing.T) {
	s := NewScreen(4, 4)

	// Partly off-screen rects are clipped, empty ones draw nothing
	s.DrawRectColor(NewRect(-2, 2, 4, 10), '#', ColorRed)
	s.DrawRectColor(NewRect(3, 0, 0, 4), '@', ColorRed)
	s.DrawRectColor(NewRect(1, 1, -3, 2), '@', ColorRed)

	expected := "    \n    \n##  \n##  "
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
