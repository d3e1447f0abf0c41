package widgets

import (
	"testing"

	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/runtime"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"hello", 0, ""},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestAlign(t *testing.T) {
	if got := Align("ab", 6, AlignCenter); got != "  ab  " {
		t.Fatalf("center = %q", got)
	}
	if got := Align("ab", 4, AlignRight); got != "  ab" {
		t.Fatalf("right = %q", got)
	}
	if got := Align("ab", 4, AlignLeft); got != "ab  " {
		t.Fatalf("left = %q", got)
	}
}

func TestWriteLine_FlattensAndClips(t *testing.T) {
	buf := runtime.NewBuffer(8, 2)
	area := runtime.Rect{Width: 8, Height: 1}
	WriteLine(buf, area, 0, "two\nlines here", backend.DefaultStyle(), AlignLeft)
	WriteLine(buf, area, 1, "outside", backend.DefaultStyle(), AlignLeft)
	if got := buf.Row(0); got != "two l..." {
		t.Fatalf("row 0 = %q", got)
	}
	if got := buf.Row(1); got != "" {
		t.Fatalf("expected row 1 untouched, got %q", got)
	}
}

func TestDataObservable_Notifies(t *testing.T) {
	var base AdapterBase
	calls := 0
	unsub := base.Observable().Subscribe(func() { calls++ })
	base.NotifyDataSetChanged()
	base.NotifyDataSetChanged()
	unsub()
	base.NotifyDataSetChanged()
	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
	if base.Observable().Changes() != 3 {
		t.Fatalf("expected 3 changes, got %d", base.Observable().Changes())
	}
}
