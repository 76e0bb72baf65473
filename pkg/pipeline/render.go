package pipeline

import (
	"bytes"
	"image/color"
	"math"

	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// Background is the map color behind the stacks.
var Background = color.RGBA{0xf4, 0xf1, 0xe8, 0xff}

// Render generates output artifacts in the requested formats. The JSON
// artifact is the layout l.
func Render(b *board.Board, m *blindstack.Metrics, l Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = RenderSVG(b, m, opts)
		case FormatPNG:
			data, err = RenderPNG(b, m, opts)
		case FormatJSON:
			data, err = MarshalLayout(l)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderSVG paints the board, or the stack named in opts, as SVG.
func RenderSVG(b *board.Board, m *blindstack.Metrics, opts Options) ([]byte, error) {
	fr, err := frameFor(b, m, opts)
	if err != nil {
		return nil, err
	}
	svg := surface.NewSVG(fr.w, fr.h, Background)
	fr.paint(svg)
	return svg.Bytes(), nil
}

// RenderPNG paints the board, or the stack named in opts, as PNG.
func RenderPNG(b *board.Board, m *blindstack.Metrics, opts Options) ([]byte, error) {
	fr, err := frameFor(b, m, opts)
	if err != nil {
		return nil, err
	}
	img := surface.NewRaster(int(math.Ceil(fr.w)), int(math.Ceil(fr.h)), Background)
	fr.paint(img)

	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// frame is the output size and paint call of one render.
type frame struct {
	w, h  float64
	paint func(surface.Surface)
}

func frameFor(b *board.Board, m *blindstack.Metrics, opts Options) (frame, error) {
	if opts.Stack != "" {
		at, w, h, ok := b.FitStack(m.Layout(), opts.Stack, StackPadding)
		if !ok {
			return frame{}, errors.New(errors.ErrCodeStackNotFound, "stack %q not found", opts.Stack)
		}
		return frame{w: w, h: h, paint: func(s surface.Surface) {
			b.PaintStack(s, m, opts.Stack, at)
		}}, nil
	}

	var popts []board.PaintOption
	if opts.Cull {
		popts = append(popts, board.Culled())
	}
	w, h := b.ViewSize()
	return frame{w: w, h: h, paint: func(s surface.Surface) {
		b.Paint(s, m, popts...)
	}}, nil
}
