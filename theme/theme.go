// Package theme derives slot styles from chroma syntax styles.
package theme

import (
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/odvcencio/furry-shelf/backend"
)

// DefaultName is the chroma style used when none is configured.
const DefaultName = "monokai"

// Theme holds the styles a book view draws with.
type Theme struct {
	Name        string
	Base        backend.Style
	Header      backend.Style
	Title       backend.Style
	Author      backend.Style
	Description backend.Style
	Selected    backend.Style
	Error       backend.Style
}

// Default returns a theme that uses only terminal attributes.
func Default() Theme {
	base := backend.DefaultStyle()
	return Theme{
		Name:        "default",
		Base:        base,
		Header:      base.Bold(true),
		Title:       base.Bold(true),
		Author:      base.Italic(true),
		Description: base.Dim(true),
		Selected:    base.Reverse(true),
		Error:       base.Foreground(backend.RGB(0xd7, 0x00, 0x00)),
	}
}

// FromChroma builds a theme from the named chroma style.
// Unknown names return Default and false.
func FromChroma(name string) (Theme, bool) {
	style, ok := styles.Registry[name]
	if !ok || style == nil {
		return Default(), false
	}

	bg := style.Get(chroma.Background)
	base := apply(backend.DefaultStyle(), bg)
	t := Theme{
		Name:        name,
		Base:        base,
		Header:      apply(base, style.Get(chroma.GenericHeading)).Bold(true),
		Title:       apply(base, style.Get(chroma.NameFunction)).Bold(true),
		Author:      apply(base, style.Get(chroma.LiteralString)),
		Description: apply(base, style.Get(chroma.Comment)),
		Error:       apply(base, style.Get(chroma.GenericError)),
	}
	t.Selected = t.Base.Reverse(true)
	if bg.Background.IsSet() && bg.Colour.IsSet() {
		t.Selected = base.Background(color(bg.Colour)).Foreground(color(bg.Background))
	}
	return t, true
}

// Names lists the registered chroma styles.
func Names() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func apply(style backend.Style, entry chroma.StyleEntry) backend.Style {
	if entry.Colour.IsSet() {
		style = style.Foreground(color(entry.Colour))
	}
	if entry.Background.IsSet() {
		style = style.Background(color(entry.Background))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

func color(c chroma.Colour) backend.Color {
	return backend.RGB(c.Red(), c.Green(), c.Blue())
}
