package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeDB scripts the Querier surface so mapping and failure behavior
// can be tested without a live database. Query returns the configured
// result rows; QueryRow returns the single configured row, or
// pgx.ErrNoRows when none is set. nil cell values scan as NULL.
type fakeDB struct {
	rows     [][]any
	queryErr error

	row     []any
	scanErr error

	tx       *fakeTx
	beginErr error

	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL = sql
	f.lastArgs = args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{rows: f.rows}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL = sql
	f.lastArgs = args
	if f.scanErr != nil {
		return &fakeRow{err: f.scanErr}
	}
	if f.row == nil {
		return &fakeRow{err: pgx.ErrNoRows}
	}
	return &fakeRow{row: f.row}
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

// namedArg extracts a value from the last call's pgx.NamedArgs.
func (f *fakeDB) namedArg(name string) any {
	for _, arg := range f.lastArgs {
		if named, ok := arg.(pgx.NamedArgs); ok {
			return named[name]
		}
	}
	return nil
}

type fakeRow struct {
	row []any
	err error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(dest, r.row)
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(dest, r.rows[r.idx-1])
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

// fakeTx scripts the transaction used by SaveConversation. Each
// QueryRow call pops the next insert id; errAt (1-based) makes that
// call fail instead.
type fakeTx struct {
	ids   []int64
	errAt int
	err   error

	calls      int
	args       []pgx.NamedArgs
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.calls++
	for _, arg := range args {
		if named, ok := arg.(pgx.NamedArgs); ok {
			t.args = append(t.args, named)
		}
	}
	if t.errAt == t.calls {
		return &fakeRow{err: t.err}
	}
	return &fakeRow{row: []any{t.ids[t.calls-1]}}
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	// Matches pgx: rollback after commit is a no-op.
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (t *fakeTx) Conn() *pgx.Conn                           { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects            { return pgx.LargeObjects{} }
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &fakeRows{}, nil
}

// scanInto assigns scripted cell values to the scan destinations the
// store actually uses. nil cells become NULL for pgtype destinations.
func scanInto(dest []any, src []any) error {
	if len(dest) != len(src) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(src))
	}
	for i, d := range dest {
		v := src[i]
		switch d := d.(type) {
		case *int64:
			d2, ok := v.(int64)
			if !ok {
				return fmt.Errorf("scan: column %d: %T is not int64", i, v)
			}
			*d = d2
		case *string:
			d2, ok := v.(string)
			if !ok {
				return fmt.Errorf("scan: column %d: %T is not string", i, v)
			}
			*d = d2
		case *time.Time:
			d2, ok := v.(time.Time)
			if !ok {
				return fmt.Errorf("scan: column %d: %T is not time.Time", i, v)
			}
			*d = d2
		case *pgtype.Text:
			if v == nil {
				*d = pgtype.Text{}
			} else {
				*d = pgtype.Text{String: v.(string), Valid: true}
			}
		case *pgtype.Numeric:
			if v == nil {
				*d = pgtype.Numeric{}
			} else {
				*d = v.(pgtype.Numeric)
			}
		case *pgtype.Date:
			if v == nil {
				*d = pgtype.Date{}
			} else {
				*d = pgtype.Date{Time: v.(time.Time), Valid: true}
			}
		default:
			return fmt.Errorf("scan: column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}
