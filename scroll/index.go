package scroll

// Index maps between item positions and content rows.
type Index interface {
	TotalHeight() int
	IndexForOffset(offset int) int
	OffsetForIndex(index int) int
}

// FixedHeightIndex lays out Count items of Height rows each.
type FixedHeightIndex struct {
	Height int
	Count  func() int
}

func (f FixedHeightIndex) count() int {
	if f.Count == nil {
		return 0
	}
	return max(f.Count(), 0)
}

// TotalHeight returns the rows needed for every item.
func (f FixedHeightIndex) TotalHeight() int {
	if f.Height <= 0 {
		return 0
	}
	return f.Height * f.count()
}

// IndexForOffset returns the item covering content row offset.
func (f FixedHeightIndex) IndexForOffset(offset int) int {
	n := f.count()
	if f.Height <= 0 || offset <= 0 || n == 0 {
		return 0
	}
	return min(offset/f.Height, n-1)
}

// OffsetForIndex returns the first content row of item index.
func (f FixedHeightIndex) OffsetForIndex(index int) int {
	n := f.count()
	if f.Height <= 0 || index <= 0 || n == 0 {
		return 0
	}
	return min(index, n-1) * f.Height
}

// Visible returns the half-open item range [first, last) that intersects
// the viewport.
func Visible(index Index, v *Viewport) (first, last int) {
	if index == nil || v == nil || v.ViewHeight() == 0 || index.TotalHeight() == 0 {
		return 0, 0
	}
	first = index.IndexForOffset(v.Offset())
	end := v.Offset() + v.ViewHeight() - 1
	last = index.IndexForOffset(end) + 1
	return first, last
}

var _ Index = FixedHeightIndex{}
