package spotting

import (
	"testing"

	"github.com/matzehuels/stackview/pkg/piece"
)

func TestByProperty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"absent", nil, true},
		{"true", true, true},
		{"false", false, false},
		{"wrong type", "no", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := piece.NewBasic("p", "", 0, 0)
			p.SetProperty(piece.Spotted, tt.value)
			if got := (ByProperty{}).Spotted(p); got != tt.want {
				t.Errorf("Spotted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	a := piece.NewBasic("a", "", 0, 0)
	b := piece.NewBasic("b", "", 0, 0)
	s := NewSet("a")

	if !s.Spotted(a) || s.Spotted(b) {
		t.Fatal("initial membership wrong")
	}
	s.Spot("b")
	s.Conceal("a")
	if s.Spotted(a) || !s.Spotted(b) {
		t.Error("Spot/Conceal did not update membership")
	}
	if got := s.Toggle("a"); !got || !s.Spotted(a) {
		t.Error("Toggle should spot a concealed piece")
	}
	if got := s.Toggle("a"); got || s.Spotted(a) {
		t.Error("Toggle should conceal a spotted piece")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestFuncAndAlways(t *testing.T) {
	p := piece.NewBasic("p", "", 0, 0)
	if !(Always{}).Spotted(p) {
		t.Error("Always should spot everything")
	}
	never := Func(func(piece.Piece) bool { return false })
	if never.Spotted(p) {
		t.Error("Func adapter ignored the function result")
	}
}
