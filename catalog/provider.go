package catalog

import (
	"context"
	"time"
)

// Provider produces the current collection. Implementations may block and
// should honor ctx.
type Provider interface {
	FetchItems(ctx context.Context) (Collection, error)
}

// FuncProvider adapts a function into a Provider.
type FuncProvider func(ctx context.Context) (Collection, error)

// FetchItems calls f.
func (f FuncProvider) FetchItems(ctx context.Context) (Collection, error) {
	return f(ctx)
}

// StaticProvider always returns the same books.
type StaticProvider struct {
	Items Collection
}

// NewStaticProvider creates a provider over books.
func NewStaticProvider(books ...Book) StaticProvider {
	return StaticProvider{Items: Collection(books)}
}

// Reference returns the two-book stub the shelf ships with.
func Reference() StaticProvider {
	return NewStaticProvider(
		NewBook("The Alchemist", "Paulo Coelho", "A magical story about following your dreams"),
		NewBook("To Kill a Mockingbird", "Harper Lee", "A powerful novel about racism and injustice"),
	)
}

// FetchItems returns a copy of the configured books.
func (p StaticProvider) FetchItems(ctx context.Context) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := p.Items.Clone()
	if items == nil {
		items = Collection{}
	}
	return items, nil
}

// DelayedProvider waits Delay before asking Provider.
type DelayedProvider struct {
	Provider Provider
	Delay    time.Duration
}

// FetchItems waits, then delegates. Cancelling ctx stops the wait.
func (p DelayedProvider) FetchItems(ctx context.Context) (Collection, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if p.Provider == nil {
		return Collection{}, nil
	}
	return p.Provider.FetchItems(ctx)
}

var (
	_ Provider = FuncProvider(nil)
	_ Provider = StaticProvider{}
	_ Provider = DelayedProvider{}
	_ Provider = (*FileProvider)(nil)
)
