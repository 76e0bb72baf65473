package blindstack

import (
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// UnselectedVisible accepts spotted pieces the viewer can see that are not
// selected.
func UnselectedVisible(sp spotting.Spotter) piece.Filter {
	return func(p piece.Piece) bool {
		return !piece.IsInvisibleToMe(p) && !piece.IsSelected(p) && sp.Spotted(p)
	}
}

// SelectedVisible accepts spotted, selected pieces the viewer can see.
func SelectedVisible(sp spotting.Spotter) piece.Filter {
	return func(p piece.Piece) bool {
		return !piece.IsInvisibleToMe(p) && piece.IsSelected(p) && sp.Spotted(p)
	}
}

// Visible accepts pieces the viewer can see, selected or not.
func Visible(sp spotting.Spotter) piece.Filter {
	return func(p piece.Piece) bool {
		return !piece.IsInvisibleToMe(p) && sp.Spotted(p)
	}
}
