package geom

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), true},
		{"contained", R(0, 0, 10, 10), R(2, 2, 2, 2), true},
		{"touching edge", R(0, 0, 10, 10), R(10, 0, 10, 10), false},
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 5, 5), false},
		{"empty operand", R(0, 0, 10, 10), R(5, 5, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	got := R(0, 0, 10, 10).Union(R(5, -5, 10, 5))
	want := R(0, -5, 15, 15)
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(R(1, 2, 3, 4)); got != R(1, 2, 3, 4) {
		t.Errorf("Union() with empty receiver = %v", got)
	}
}

func TestScaleAbout(t *testing.T) {
	anchor := Pt(100, 100)
	got := ScaleAbout(Pt(110, 90), anchor, 2)
	if want := Pt(120, 80); got != want {
		t.Errorf("ScaleAbout() = %v, want %v", got, want)
	}
	if got := ScaleAbout(anchor, anchor, 3); got != anchor {
		t.Errorf("anchor should be fixed, got %v", got)
	}
}

func TestShapeTranslate(t *testing.T) {
	s := RectShape(R(0, 0, 4, 2))
	moved := s.Translate(Pt(-15, 0))

	if s[0] != Pt(0, 0) {
		t.Fatalf("Translate modified receiver: %v", s)
	}
	if got, want := moved.Bounds(), R(-15, 0, 4, 2); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if Shape(nil).Translate(Pt(1, 1)) != nil {
		t.Error("nil shape should translate to nil")
	}
}

func TestShapeContains(t *testing.T) {
	s := RectShape(R(0, 0, 10, 10))
	if !s.Contains(Pt(5, 5)) {
		t.Error("center should be inside")
	}
	if s.Contains(Pt(15, 5)) {
		t.Error("outside point reported inside")
	}
}
