package desktop

import (
	"image"
	"image/draw"
	"math"
)

// DefaultTolerance is the summed 16-bit RGB difference under which two pixels
// are considered equal.
const DefaultTolerance uint32 = 20000

// Matcher finds a template on a captured frame by comparing pixels within a
// colour tolerance. Confidence is the fraction of template pixels that must
// match.
type Matcher struct {
	Tolerance uint32
}

// NewMatcher returns a matcher using tolerance, or DefaultTolerance when zero.
func NewMatcher(tolerance uint32) Matcher {
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	return Matcher{Tolerance: tolerance}
}

// ToRGBA returns img as an *image.RGBA anchored at the origin, copying only
// when needed. Matching on RGBA frames reads Pix directly.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Area is a search region relative to the frame size, each bound in [0,1].
type Area struct {
	Left, Top, Right, Bottom float64
}

// FullArea covers the whole frame.
var FullArea = Area{Right: 1, Bottom: 1}

// CenteredArea is the centred region covering fraction of each dimension.
func CenteredArea(fraction float64) Area {
	if fraction <= 0 || fraction >= 1 {
		return FullArea
	}
	margin := (1 - fraction) / 2
	return Area{Left: margin, Top: margin, Right: 1 - margin, Bottom: 1 - margin}
}

// Rect converts the area to pixels within bounds.
func (a Area) Rect(bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	return image.Rect(
		bounds.Min.X+int(math.Floor(a.Left*w)),
		bounds.Min.Y+int(math.Floor(a.Top*h)),
		bounds.Min.X+int(math.Ceil(a.Right*w)),
		bounds.Min.Y+int(math.Ceil(a.Bottom*h)),
	).Intersect(bounds)
}

// Match searches the whole frame and returns the centre of the first hit.
func (m Matcher) Match(frame, tpl image.Image, confidence float64) (Point, bool) {
	return m.MatchIn(frame, tpl, frame.Bounds(), confidence)
}

// MatchIn searches only area. The template must fit inside it entirely.
func (m Matcher) MatchIn(frame, tpl image.Image, area image.Rectangle, confidence float64) (Point, bool) {
	tb := tpl.Bounds()
	if tb.Empty() {
		return Point{}, false
	}
	sb := frame.Bounds().Intersect(area)
	if tb.Dx() > sb.Dx() || tb.Dy() > sb.Dy() {
		return Point{}, false
	}

	total := tb.Dx() * tb.Dy()
	required := int(math.Ceil(float64(total)*confidence - 1e-9))
	allowed := total - required
	if allowed < 0 {
		allowed = 0
	}

	fr, frameOK := frame.(*image.RGBA)
	tr, tplOK := tpl.(*image.RGBA)
	fast := frameOK && tplOK

	for y := sb.Min.Y; y+tb.Dy() <= sb.Max.Y; y++ {
		for x := sb.Min.X; x+tb.Dx() <= sb.Max.X; x++ {
			var hit bool
			if fast {
				hit = m.matchesAtRGBA(fr, tr, x, y, allowed)
			} else {
				hit = m.matchesAt(frame, tpl, x, y, allowed)
			}
			if hit {
				return Point{X: x + tb.Dx()/2, Y: y + tb.Dy()/2}, true
			}
		}
	}
	return Point{}, false
}

func (m Matcher) matchesAt(frame, tpl image.Image, x, y, allowed int) bool {
	tb := tpl.Bounds()
	mismatched := 0
	for iy := 0; iy < tb.Dy(); iy++ {
		for ix := 0; ix < tb.Dx(); ix++ {
			r1, g1, b1, _ := frame.At(x+ix, y+iy).RGBA()
			r2, g2, b2, _ := tpl.At(tb.Min.X+ix, tb.Min.Y+iy).RGBA()
			if absDiff(r1, r2)+absDiff(g1, g2)+absDiff(b1, b2) > m.Tolerance {
				mismatched++
				if mismatched > allowed {
					return false
				}
			}
		}
	}
	return true
}

// matchesAtRGBA is matchesAt reading Pix. 8-bit channels are widened by
// 0x101, as RGBA() does, so the tolerance means the same on both paths.
func (m Matcher) matchesAtRGBA(frame, tpl *image.RGBA, x, y, allowed int) bool {
	tb := tpl.Rect
	mismatched := 0
	for iy := 0; iy < tb.Dy(); iy++ {
		fi := frame.PixOffset(x, y+iy)
		ti := tpl.PixOffset(tb.Min.X, tb.Min.Y+iy)
		for ix := 0; ix < tb.Dx(); ix, fi, ti = ix+1, fi+4, ti+4 {
			d := absDiff(uint32(frame.Pix[fi]), uint32(tpl.Pix[ti])) +
				absDiff(uint32(frame.Pix[fi+1]), uint32(tpl.Pix[ti+1])) +
				absDiff(uint32(frame.Pix[fi+2]), uint32(tpl.Pix[ti+2]))
			if d*0x101 > m.Tolerance {
				mismatched++
				if mismatched > allowed {
					return false
				}
			}
		}
	}
	return true
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
