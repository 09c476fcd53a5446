package core

import (
	"strings"
	"testing"
)

// runeAt is the rune part of GetCell.
func runeAt(s *Screen, x, y int) rune {
	return s.GetCell(x, y).Rune
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	want := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 12)+"\n", 4), "\n")
	if s.String() != want {
		t.Errorf("new screen should be all spaces, got %q", s.String())
	}
	if c := s.GetCell(3, 2); c != blankCell {
		t.Errorf("GetCell = %+v, expected blank", c)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)

	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.Set(p[0], p[1], 'A')
		s.SetColor(p[0], p[1], 'A', ColorRed)
		if c := s.GetCell(p[0], p[1]); c != blankCell {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], c)
		}
	}
	if strings.ContainsRune(s.String(), 'A') {
		t.Error("out of bounds writes should be dropped")
	}
}

func TestScreenSetKeepsColor(t *testing.T) {
	s := NewScreen(6, 3)
	s.FillColor('.', ColorRed)

	s.Set(0, 2, 'x')
	if c := s.GetCell(0, 2); c.Rune != 'x' || c.Color != ColorRed {
		t.Errorf("Set should keep the cell color, got %+v", c)
	}

	s.SetColor(1, 2, 'y', ColorCyan)
	if c := s.GetCell(1, 2); c.Rune != 'y' || c.Color != ColorCyan {
		t.Errorf("SetColor: got %+v", c)
	}

	s.Clear()
	if c := s.GetCell(0, 2); c != blankCell {
		t.Errorf("Clear should reset rune and color, got %+v", c)
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawTextColor(8, 0, "Score", ColorYellow)
	if s.Row(0) != "        Sc" {
		t.Errorf("text should be clipped at the right edge, row = %q", s.Row(0))
	}
	if c := s.GetCell(9, 0); c.Color != ColorYellow {
		t.Errorf("DrawTextColor color = %v", c.Color)
	}

	s.DrawTextCentered(1, "GO")
	if s.Row(1) != "    GO    " {
		t.Errorf("DrawTextCentered row = %q", s.Row(1))
	}

	s.DrawText(0, 2, "ÿé")
	if runeAt(s, 1, 2) != 'é' {
		t.Errorf("DrawText should advance one cell per rune, got %q", s.Row(2))
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(8, 6)

	s.DrawRectColor(NewRect(6, 4, 5, 5), '#', ColorGreen)
	if c := s.GetCell(7, 5); c.Rune != '#' || c.Color != ColorGreen {
		t.Errorf("DrawRectColor should fill the visible part, got %+v", c)
	}
	if runeAt(s, 5, 4) != ' ' {
		t.Error("DrawRectColor wrote outside its rect")
	}

	s.DrawVLine(2, 1, 10, '┊', ColorGray)
	for y := 1; y < 6; y++ {
		if c := s.GetCell(2, y); c.Rune != '┊' || c.Color != ColorGray {
			t.Errorf("DrawVLine at y=%d: got %+v", y, c)
		}
	}
	if runeAt(s, 2, 0) != ' ' {
		t.Error("DrawVLine should start at its y")
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 4, 3))
	want := []string{"┌──┐    ", "│  │    ", "└──┘    "}
	for y, w := range want {
		if s.Row(y) != w {
			t.Errorf("DrawBox row %d = %q, expected %q", y, s.Row(y), w)
		}
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawTextColor(0, 0, "lane", ColorCyan)
	s.DrawText(0, 3, "gone")

	s.Resize(3, 2)
	if s.String() != "lan\n   " {
		t.Errorf("after shrink: %q", s.String())
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("resize should keep colors")
	}

	s.Resize(5, 4)
	if s.Row(0) != "lan  " || s.Row(3) != "     " {
		t.Errorf("after grow: %q", s.String())
	}
	if s.Row(-1) != "     " || s.Row(4) != "     " {
		t.Error("rows outside the screen should be blank")
	}
}
