package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Min: 10, Max: 20}

	tests := []struct {
		name     string
		v        float64
		expected bool
	}{
		{"inside", 15, true},
		{"lower bound (inclusive)", 10, true},
		{"upper bound (inclusive)", 20, true},
		{"below", 9.999, false},
		{"above", 20.001, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Contains(tc.v); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.v, got, tc.expected)
			}
		})
	}
}

func TestSpanPad(t *testing.T) {
	s := Span{Min: 10, Max: 20}.Pad(5)
	if s.Min != 5 || s.Max != 25 {
		t.Errorf("Pad(5) = %+v, expected {5 25}", s)
	}
}

func TestClampLanes(t *testing.T) {
	tests := []struct {
		name              string
		val, lo, hi, want int
	}{
		{"middle lane", 2, 0, 3, 2},
		{"left of lane 0", -1, 0, 3, 0},
		{"right of last lane", 4, 0, 3, 3},
		{"single lane", 1, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, -1) != -1 || Min(-1, 3) != -1 {
		t.Error("Min should return the smaller value")
	}
	if Max(3, -1) != 3 || Max(-1, 3) != 3 {
		t.Error("Max should return the larger value")
	}
}

func TestPaletteInverted(t *testing.T) {
	p := Palette{Background: ColorDefault, Player: ColorCyan, Obstacle: ColorRed, Score: ColorWhite}
	inv := p.Inverted()

	if inv.Background != ColorRed {
		t.Errorf("inverted background = %v, expected obstacle color", inv.Background)
	}
	if inv.Obstacle != ColorDefault {
		t.Errorf("inverted obstacle = %v, expected background color", inv.Obstacle)
	}
	if inv.Score != ColorCyan {
		t.Errorf("inverted score = %v, expected player color", inv.Score)
	}
}
