// Package catalog holds the book model and the providers that produce it.
package catalog

// Book is one entry in a collection. A nil field was absent upstream.
type Book struct {
	Title       *string `json:"title,omitempty" yaml:"title,omitempty" db:"title"`
	Author      *string `json:"author,omitempty" yaml:"author,omitempty" db:"author"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty" db:"description"`
}

// Text returns a pointer to s for building books inline.
func Text(s string) *string {
	return &s
}

// Value returns *s, or placeholder when s is nil.
func Value(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	return *s
}

// NewBook creates a book with every field present.
func NewBook(title, author, description string) Book {
	return Book{Title: Text(title), Author: Text(author), Description: Text(description)}
}

// Equal reports whether b and other hold the same field values.
func (b Book) Equal(other Book) bool {
	return sameText(b.Title, other.Title) &&
		sameText(b.Author, other.Author) &&
		sameText(b.Description, other.Description)
}

func sameText(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Collection is an ordered list of books. Index order is display order.
// Collections are replaced wholesale and treated as immutable once
// published; Clone before mutating.
type Collection []Book

// Len returns the number of books.
func (c Collection) Len() int {
	return len(c)
}

// Clone returns a copy that shares no field storage with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, b := range c {
		out[i] = Book{
			Title:       cloneText(b.Title),
			Author:      cloneText(b.Author),
			Description: cloneText(b.Description),
		}
	}
	return out
}

// Equal reports whether both collections hold equal books in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func cloneText(s *string) *string {
	if s == nil {
		return nil
	}
	return Text(*s)
}
