package compare

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-gradient/internal/raster"
)

// ErrShapeMismatch is returned when the two images differ in width, height
// or max value.
var ErrShapeMismatch = errors.New("image shapes differ")

// Tolerance controls how far samples may differ before they count as a
// mismatch.
type Tolerance struct {
	// Inner is the allowed absolute difference for interior pixels.
	Inner int

	// Edge is the allowed absolute difference for border-ring pixels.
	// A negative value ignores the border ring.
	Edge int

	// BorderWidth is the width of the border ring in pixels.
	BorderWidth int
}

// DefaultTolerance allows ±1 inside and ignores a 3-pixel border ring.
func DefaultTolerance() Tolerance {
	return Tolerance{Inner: 1, Edge: -1, BorderWidth: 3}
}

// Mismatch describes one pixel outside tolerance.
type Mismatch struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Got  int `json:"got"`
	Want int `json:"want"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("(%d,%d) got=%d want=%d", m.X, m.Y, m.Got, m.Want)
}

// Report summarises a comparison.
type Report struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Compared is the number of pixels checked against a tolerance.
	Compared int `json:"compared"`

	// Ignored is the number of border pixels skipped.
	Ignored int `json:"ignored"`

	// Mismatches is the number of compared pixels outside tolerance.
	Mismatches int `json:"mismatches"`

	// MaxDelta is the largest absolute difference among compared pixels.
	MaxDelta int `json:"max_delta"`

	// First is the first mismatch in row-major order, or nil.
	First *Mismatch `json:"first,omitempty"`
}

// OK reports whether no compared pixel exceeded its tolerance.
func (r *Report) OK() bool {
	return r.Mismatches == 0
}

// Compare checks got against want pixel by pixel in row-major order.
//
// Returns an error wrapping ErrShapeMismatch when the images do not have the
// same width, height and max value. Otherwise the returned Report lists how
// many pixels were compared and which, if any, fell outside tolerance.
func Compare(got, want *raster.Image, tol Tolerance) (*Report, error) {
	if got == nil || want == nil {
		return nil, fmt.Errorf("%w: nil image", ErrShapeMismatch)
	}
	if !got.SameShape(want) {
		return nil, fmt.Errorf("%w: got %dx%d max %d, want %dx%d max %d", ErrShapeMismatch,
			got.Width(), got.Height(), got.MaxValue(), want.Width(), want.Height(), want.MaxValue())
	}

	width, height := got.Width(), got.Height()
	report := &Report{Width: width, Height: height}

	for y := 0; y < height; y++ {
		gotRow, wantRow := got.Row(y), want.Row(y)
		for x := 0; x < width; x++ {
			limit := tol.Inner
			if inBorder(x, y, width, height, tol.BorderWidth) {
				if tol.Edge < 0 {
					report.Ignored++
					continue
				}
				limit = tol.Edge
			}

			report.Compared++
			a, b := int(gotRow[x]), int(wantRow[x])
			delta := a - b
			if delta < 0 {
				delta = -delta
			}
			if delta > report.MaxDelta {
				report.MaxDelta = delta
			}
			if delta > limit {
				report.Mismatches++
				if report.First == nil {
					report.First = &Mismatch{X: x, Y: y, Got: a, Want: b}
				}
			}
		}
	}

	return report, nil
}

// inBorder reports whether (x, y) lies within border pixels of any edge.
func inBorder(x, y, width, height, border int) bool {
	return x < border || y < border || x >= width-border || y >= height-border
}
