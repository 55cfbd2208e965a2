// Package sqlstub is a scripted database/sql driver for repository tests.
// Every statement consumes the next Response in order and is recorded.
package sqlstub

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
)

// Response is the outcome of one statement.
type Response struct {
	Columns      []string
	Rows         [][]driver.Value
	RowsAffected int64
	Err          error
}

// Statement is a recorded query with its arguments.
type Statement struct {
	Query string
	Args  []any
}

// Stub holds the scripted responses and the executed statements.
type Stub struct {
	mu         sync.Mutex
	responses  []Response
	statements []Statement
}

// Open returns a *sql.DB answering with responses and closes it on cleanup.
func Open(t testing.TB, responses ...Response) (*sql.DB, *Stub) {
	t.Helper()

	stub := &Stub{responses: responses}
	db := sql.OpenDB(connector{stub: stub})
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	return db, stub
}

// Statements returns the executed statements in order.
func (s *Stub) Statements() []Statement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Statement(nil), s.statements...)
}

// Pending reports how many scripted responses were not consumed.
func (s *Stub) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}

func (s *Stub) next(query string, args []driver.NamedValue) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a.Value
	}
	s.statements = append(s.statements, Statement{Query: query, Args: values})

	if len(s.responses) == 0 {
		return Response{}, fmt.Errorf("sqlstub: unexpected statement %q", query)
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

type connector struct {
	stub *Stub
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{stub: c.stub}, nil
}

func (c connector) Driver() driver.Driver {
	return stubDriver{}
}

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("sqlstub: use Open")
}

type conn struct {
	stub *Stub
}

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("sqlstub: prepared statements are not supported")
}

func (c *conn) Close() error { return nil }

func (c *conn) Begin() (driver.Tx, error) { return tx{}, nil }

func (c *conn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) { return tx{}, nil }

func (c *conn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	resp, err := c.stub.next(query, args)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &rows{columns: resp.Columns, values: resp.Rows}, nil
}

func (c *conn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	resp, err := c.stub.next(query, args)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return driver.RowsAffected(resp.RowsAffected), nil
}

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type rows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *rows) Columns() []string { return r.columns }

func (r *rows) Close() error { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}
