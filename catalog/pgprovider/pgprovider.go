// Package pgprovider reads the book collection from a Postgres table.
package pgprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/jackc/pgx/v5/stdlib"                  // "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // "postgres" driver

	"github.com/odvcencio/furry-shelf/catalog"
)

const (
	defaultTable       = "books"
	defaultOrderColumn = "id"
	dialectPostgres    = "postgres"
	colTitle           = "title"
	colAuthor          = "author"
	colDescription     = "description"
	logMsgQueryFailed  = "book query failed"
	logMsgQueryDone    = "books fetched"
	logAttrQuery       = "query"
	logAttrError       = "error"
	logAttrCount       = "count"
	logAttrDurationMS  = "duration_ms"
)

var (
	// ErrNilDatabase is returned by New without a connection.
	ErrNilDatabase = errors.New("pgprovider: nil database connection")
	// ErrEmptyTableName is returned by WithTable("").
	ErrEmptyTableName = errors.New("pgprovider: empty table name")
	// ErrUnknownDriver is returned by Open for drivers other than postgres and pgx.
	ErrUnknownDriver = errors.New("pgprovider: unknown driver")
)

// Logger receives query diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider fetches books ordered by an ordering column, so insertion
// order in the table is display order.
type Provider struct {
	db          *sqlx.DB
	table       string
	orderColumn string
	limit       uint
	logger      Logger
}

// Option configures a Provider.
type Option func(*Provider) error

// WithTable sets the table to read from.
func WithTable(name string) Option {
	return func(p *Provider) error {
		if name == "" {
			return ErrEmptyTableName
		}
		p.table = name
		return nil
	}
}

// WithOrderColumn sets the column books are sorted by.
func WithOrderColumn(name string) Option {
	return func(p *Provider) error {
		if name != "" {
			p.orderColumn = name
		}
		return nil
	}
}

// WithLimit caps the number of books fetched. Zero means no cap.
func WithLimit(n uint) Option {
	return func(p *Provider) error {
		p.limit = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(p *Provider) error {
		p.logger = logger
		return nil
	}
}

// New creates a provider on an open connection.
func New(db *sqlx.DB, options ...Option) (*Provider, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	p := &Provider{
		db:          db,
		table:       defaultTable,
		orderColumn: defaultOrderColumn,
	}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Open connects with driver "postgres" (lib/pq) or "pgx" (pgx stdlib).
// The connection is opened lazily by database/sql.
func Open(driver, dsn string, options ...Option) (*Provider, error) {
	switch driver {
	case "", "postgres":
		driver = "postgres"
	case "pgx":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	p, err := New(db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// FetchItems runs the select and maps NULL columns to absent fields.
func (p *Provider) FetchItems(ctx context.Context) (catalog.Collection, error) {
	query, err := p.selectQuery()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	books := catalog.Collection{}
	if err := p.db.SelectContext(ctx, &books, query); err != nil {
		p.log().Error(logMsgQueryFailed, logAttrQuery, query, logAttrError, err.Error())
		return nil, fmt.Errorf("select books: %w", err)
	}
	p.log().Debug(logMsgQueryDone,
		logAttrQuery, query,
		logAttrCount, len(books),
		logAttrDurationMS, time.Since(start).Milliseconds(),
	)
	return books, nil
}

// Close closes the connection.
func (p *Provider) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *Provider) selectQuery() (string, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(p.table).
		Select(colTitle, colAuthor, colDescription).
		Order(goqu.I(p.orderColumn).Asc())
	if p.limit > 0 {
		stmt = stmt.Limit(p.limit)
	}
	query, _, err := stmt.ToSQL()
	if err != nil {
		return "", fmt.Errorf("build book query: %w", err)
	}
	return query, nil
}

func (p *Provider) log() Logger {
	if p.logger == nil {
		return nopLogger{}
	}
	return p.logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var _ catalog.Provider = (*Provider)(nil)
