package scroll

import (
	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/runtime"
)

// Bar draws a one-column vertical scroll indicator.
type Bar struct {
	Track     backend.Style
	Thumb     backend.Style
	TrackRune rune
	ThumbRune rune
	MinThumb  int
}

// DefaultBar returns an ASCII bar.
func DefaultBar() Bar {
	return Bar{
		Track:     backend.DefaultStyle(),
		Thumb:     backend.DefaultStyle().Reverse(true),
		TrackRune: '|',
		ThumbRune: ' ',
		MinThumb:  1,
	}
}

// thumb returns the thumb position and length for a track of height rows.
// The length is zero when all content fits.
func (b Bar) thumb(v *Viewport, height int) (pos, length int) {
	content := v.ContentHeight()
	if height <= 0 || content <= v.ViewHeight() {
		return 0, 0
	}
	length = max(height*v.ViewHeight()/content, max(b.MinThumb, 1))
	length = min(length, height)
	span := height - length
	if maxOffset := v.MaxOffset(); maxOffset > 0 {
		pos = span * v.Offset() / maxOffset
	}
	return pos, length
}

// Render draws the bar into column area.X of area. Nothing is drawn when
// the content fits the view.
func (b Bar) Render(buf *runtime.Buffer, area runtime.Rect, v *Viewport) bool {
	if buf == nil || v == nil || area.Empty() {
		return false
	}
	pos, length := b.thumb(v, area.Height)
	if length == 0 {
		return false
	}
	for y := 0; y < area.Height; y++ {
		if y >= pos && y < pos+length {
			buf.Set(area.X, area.Y+y, b.ThumbRune, b.Thumb)
			continue
		}
		buf.Set(area.X, area.Y+y, b.TrackRune, b.Track)
	}
	return true
}
