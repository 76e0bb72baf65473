package surface

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/stackview/pkg/geom"
)

// Raster is a Surface backed by an RGBA image.
//
// Text is drawn with a fixed 7x13 bitmap face; the requested size is ignored.
type Raster struct {
	img  *image.RGBA
	face font.Face
}

var _ Surface = (*Raster)(nil)

// NewRaster allocates a width x height image filled with bg.
// A nil bg leaves the image transparent.
func NewRaster(width, height int, bg color.Color) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return &Raster{img: img, face: basicfont.Face7x13}
}

// Image returns the underlying image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Bounds() geom.Rect {
	b := r.img.Bounds()
	return geom.R(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
}

func (r *Raster) FillRect(rect geom.Rect, c color.Color) {
	dst := toImageRect(rect).Intersect(r.img.Bounds())
	if dst.Empty() {
		return
	}
	draw.Draw(r.img, dst, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) StrokeRect(rect geom.Rect, c color.Color, width float64) {
	w := math.Max(1, width)
	// Strips never reach past the rect, even when w exceeds half of it.
	bandH := math.Min(w, rect.H)
	bandW := math.Min(w, rect.W)
	sideH := math.Max(0, rect.H-2*w)
	r.FillRect(geom.R(rect.X, rect.Y, rect.W, bandH), c)
	r.FillRect(geom.R(rect.X, rect.Y+rect.H-bandH, rect.W, bandH), c)
	r.FillRect(geom.R(rect.X, rect.Y+w, bandW, sideH), c)
	r.FillRect(geom.R(rect.X+rect.W-bandW, rect.Y+w, bandW, sideH), c)
}

func (r *Raster) Text(at geom.Point, _ float64, c color.Color, s string) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(s)
}

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func toImageRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}
