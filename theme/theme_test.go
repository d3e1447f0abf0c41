package theme

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-shelf/backend"
)

func TestFromChroma_KnownStyle(t *testing.T) {
	th, ok := FromChroma(DefaultName)
	require.True(t, ok)
	assert.Equal(t, DefaultName, th.Name)
	assert.NotEqual(t, backend.DefaultStyle(), th.Title)
	assert.NotEqual(t, th.Base, th.Selected)
}

func TestFromChroma_UnknownFallsBack(t *testing.T) {
	th, ok := FromChroma("no-such-style")
	assert.False(t, ok)
	assert.Equal(t, Default(), th)
}

func TestApply_CopiesAttributes(t *testing.T) {
	entry := chroma.StyleEntry{
		Colour: chroma.NewColour(0x10, 0x20, 0x30),
		Bold:   chroma.Yes,
	}
	got := apply(backend.DefaultStyle(), entry)
	want := backend.DefaultStyle().Foreground(backend.RGB(0x10, 0x20, 0x30)).Bold(true)
	assert.Equal(t, want, got)
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DefaultName)
}
