package surface

import (
	"image/color"

	"github.com/matzehuels/stackview/pkg/geom"
)

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpBegin OpKind = iota
	OpEnd
	OpFill
	OpStroke
	OpText
)

// Op is one recorded surface call. ID and Class are those of the innermost
// open group, empty outside any group.
type Op struct {
	Kind  OpKind
	ID    string
	Class string
	Rect  geom.Rect
	At    geom.Point
	Color color.Color
	Text  string
}

// Recorder is a Surface that keeps every call in order.
type Recorder struct {
	Ops    []Op
	bounds geom.Rect
	open   []Op
}

var _ Surface = (*Recorder)(nil)
var _ Grouper = (*Recorder)(nil)

// NewRecorder returns a recorder reporting bounds as its drawable area.
func NewRecorder(bounds geom.Rect) *Recorder {
	return &Recorder{bounds: bounds}
}

func (r *Recorder) Bounds() geom.Rect { return r.bounds }

func (r *Recorder) FillRect(rect geom.Rect, c color.Color) {
	r.add(Op{Kind: OpFill, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect geom.Rect, c color.Color, _ float64) {
	r.add(Op{Kind: OpStroke, Rect: rect, Color: c})
}

func (r *Recorder) Text(at geom.Point, _ float64, c color.Color, s string) {
	r.add(Op{Kind: OpText, At: at, Color: c, Text: s})
}

func (r *Recorder) BeginGroup(id, class string) {
	op := Op{Kind: OpBegin, ID: id, Class: class}
	r.Ops = append(r.Ops, op)
	r.open = append(r.open, op)
}

func (r *Recorder) EndGroup() {
	if len(r.open) == 0 {
		return
	}
	top := r.open[len(r.open)-1]
	r.open = r.open[:len(r.open)-1]
	r.Ops = append(r.Ops, Op{Kind: OpEnd, ID: top.ID, Class: top.Class})
}

// Groups returns the ids of the groups opened with class, in draw order.
func (r *Recorder) Groups(class string) []string {
	var ids []string
	for _, op := range r.Ops {
		if op.Kind == OpBegin && op.Class == class {
			ids = append(ids, op.ID)
		}
	}
	return ids
}

// Sequence returns "class:id" for every opened group, in draw order.
func (r *Recorder) Sequence() []string {
	var seq []string
	for _, op := range r.Ops {
		if op.Kind == OpBegin {
			seq = append(seq, op.Class+":"+op.ID)
		}
	}
	return seq
}

// Reset discards every recorded operation.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.open = r.open[:0]
}

func (r *Recorder) add(op Op) {
	if n := len(r.open); n > 0 {
		op.ID = r.open[n-1].ID
		op.Class = r.open[n-1].Class
	}
	r.Ops = append(r.Ops, op)
}
