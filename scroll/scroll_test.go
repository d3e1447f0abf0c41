package scroll

import (
	"testing"

	"github.com/odvcencio/furry-shelf/runtime"
)

func TestViewport_Clamps(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(5)
	v.SetContentHeight(20)

	v.ScrollTo(100)
	if got := v.Offset(); got != 15 {
		t.Fatalf("offset = %d, want 15", got)
	}
	v.ScrollBy(-40)
	if got := v.Offset(); got != 0 {
		t.Fatalf("offset = %d, want 0", got)
	}

	v.SetContentHeight(3)
	if v.MaxOffset() != 0 {
		t.Fatalf("expected no scroll when content fits, got %d", v.MaxOffset())
	}
}

func TestViewport_ShrinkingContentPullsOffsetBack(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(4)
	v.SetContentHeight(10)
	v.ScrollToEnd()
	changes := 0
	v.SetOnChange(func(int) { changes++ })

	v.SetContentHeight(6)
	if v.Offset() != 2 || changes != 1 {
		t.Fatalf("offset=%d changes=%d", v.Offset(), changes)
	}
}

func TestViewport_PageAndReveal(t *testing.T) {
	v := NewViewport()
	v.SetViewHeight(3)
	v.SetContentHeight(12)

	v.PageBy(2)
	if v.Offset() != 6 {
		t.Fatalf("page offset = %d, want 6", v.Offset())
	}
	v.Reveal(1, 1)
	if v.Offset() != 1 {
		t.Fatalf("reveal above offset = %d, want 1", v.Offset())
	}
	v.Reveal(9, 2)
	if v.Offset() != 8 {
		t.Fatalf("reveal below offset = %d, want 8", v.Offset())
	}
	v.Reveal(9, 1)
	if v.Offset() != 8 {
		t.Fatalf("reveal of visible row moved offset to %d", v.Offset())
	}
}

func TestFixedHeightIndex(t *testing.T) {
	index := FixedHeightIndex{Height: 2, Count: func() int { return 5 }}
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"total", index.TotalHeight(), 10},
		{"index at 0", index.IndexForOffset(0), 0},
		{"index at 9", index.IndexForOffset(9), 4},
		{"index past end", index.IndexForOffset(100), 4},
		{"offset of 0", index.OffsetForIndex(0), 0},
		{"offset past end", index.OffsetForIndex(10), 8},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s = %d, want %d", tc.name, tc.got, tc.want)
		}
	}
	if (FixedHeightIndex{Height: 3}).TotalHeight() != 0 {
		t.Fatal("expected nil count to mean empty")
	}
}

func TestVisible(t *testing.T) {
	index := FixedHeightIndex{Height: 3, Count: func() int { return 10 }}
	v := NewViewport()
	v.SetViewHeight(7)
	v.SetContentHeight(index.TotalHeight())

	first, last := Visible(index, v)
	if first != 0 || last != 3 {
		t.Fatalf("visible = [%d,%d), want [0,3)", first, last)
	}
	v.ScrollTo(4)
	first, last = Visible(index, v)
	if first != 1 || last != 4 {
		t.Fatalf("visible = [%d,%d), want [1,4)", first, last)
	}

	empty := FixedHeightIndex{Height: 3, Count: func() int { return 0 }}
	if first, last := Visible(empty, v); first != 0 || last != 0 {
		t.Fatalf("expected empty range, got [%d,%d)", first, last)
	}
}

func TestBar_Render(t *testing.T) {
	buf := runtime.NewBuffer(1, 4)
	v := NewViewport()
	v.SetViewHeight(4)
	v.SetContentHeight(8)
	v.ScrollToEnd()

	bar := DefaultBar()
	bar.ThumbRune = '#'
	if !bar.Render(buf, runtime.Rect{Width: 1, Height: 4}, v) {
		t.Fatal("expected bar drawn")
	}
	col := ""
	for y := 0; y < 4; y++ {
		col += string(buf.Get(0, y).Rune)
	}
	if col != "||##" {
		t.Fatalf("bar = %q, want %q", col, "||##")
	}

	v.SetContentHeight(2)
	if bar.Render(buf, runtime.Rect{Width: 1, Height: 4}, v) {
		t.Fatal("expected no bar when content fits")
	}
}
