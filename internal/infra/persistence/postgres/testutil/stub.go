// Package testutil provides an in-process database/sql driver that understands
// the handful of statements the postgres snapshot store issues.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

const driverName = "rosterstubpg"

var (
	registerOnce sync.Once
	conns        sync.Map // dsn -> *StubConn
	seq          atomic.Uint64
)

// StubConn keeps the state table as bucket -> payload and records statements.
type StubConn struct {
	mu         sync.Mutex
	Execs      []string
	Buckets    map[string][]byte
	FailPing   bool
	FailExec   bool
	FailBegin  bool
	FailCommit bool
	FailQuery  bool
	RowsErr    error

	staged map[string][]byte // writes of the open transaction
}

// NewStubDB opens a sql.DB bound to a fresh StubConn.
func NewStubDB() (*sql.DB, *StubConn) {
	registerOnce.Do(func() { sql.Register(driverName, stubDriver{}) })
	conn := &StubConn{Buckets: make(map[string][]byte)}
	dsn := fmt.Sprintf("stub-%d", seq.Add(1))
	conns.Store(dsn, conn)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		panic(err)
	}
	return db, conn
}

// Bucket returns a copy of the payload stored under name.
func (c *StubConn) Bucket(name string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.Buckets[name]
	return append([]byte(nil), b...), ok
}

// SetBucket seeds a payload as if a previous process had persisted it.
func (c *StubConn) SetBucket(name string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Buckets[name] = append([]byte(nil), payload...)
}

type stubDriver struct{}

func (stubDriver) Open(dsn string) (driver.Conn, error) {
	v, ok := conns.Load(dsn)
	if !ok {
		return nil, fmt.Errorf("unknown stub dsn %s", dsn)
	}
	return v.(*StubConn), nil
}

func (c *StubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }
func (c *StubConn) Close() error                        { return nil }

func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// Ping implements driver.Pinger.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

// BeginTx stages writes until Commit.
func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, fmt.Errorf("begin fail")
	}
	c.mu.Lock()
	c.staged = make(map[string][]byte)
	c.mu.Unlock()
	return &stubTx{conn: c}, nil
}

// ExecContext handles CREATE TABLE and INSERT ... ON CONFLICT upserts into state.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Execs = append(c.Execs, normalize(query))
	if c.FailExec {
		return nil, fmt.Errorf("exec fail")
	}
	upper := strings.ToUpper(normalize(query))
	switch {
	case strings.HasPrefix(upper, "CREATE TABLE"):
		return driver.RowsAffected(0), nil
	case strings.HasPrefix(upper, "INSERT INTO STATE"):
		if len(args) != 2 {
			return nil, fmt.Errorf("expected bucket and payload args, got %d", len(args))
		}
		bucket, ok := args[0].Value.(string)
		if !ok {
			return nil, fmt.Errorf("bucket must be a string")
		}
		payload, err := asBytes(args[1].Value)
		if err != nil {
			return nil, err
		}
		if c.staged != nil {
			c.staged[bucket] = payload
		} else {
			c.Buckets[bucket] = payload
		}
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("unsupported statement: %s", query)
}

func asBytes(v driver.Value) ([]byte, error) {
	switch p := v.(type) {
	case []byte:
		return append([]byte(nil), p...), nil
	case string:
		return []byte(p), nil
	}
	return nil, fmt.Errorf("unsupported payload type %T", v)
}

// QueryContext answers SELECT bucket, payload FROM state in bucket order.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailQuery {
		return nil, fmt.Errorf("query fail")
	}
	if !strings.HasPrefix(strings.ToUpper(normalize(query)), "SELECT BUCKET, PAYLOAD FROM STATE") {
		return nil, fmt.Errorf("unsupported query: %s", query)
	}
	names := make([]string, 0, len(c.Buckets))
	for name := range c.Buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := &stubRows{err: c.RowsErr}
	for _, name := range names {
		rows.rows = append(rows.rows, []driver.Value{name, append([]byte(nil), c.Buckets[name]...)})
	}
	return rows, nil
}

func normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

type stubTx struct {
	conn *StubConn
}

func (t *stubTx) Commit() error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	staged := t.conn.staged
	t.conn.staged = nil
	if t.conn.FailCommit {
		return fmt.Errorf("commit fail")
	}
	for k, v := range staged {
		t.conn.Buckets[k] = v
	}
	return nil
}

func (t *stubTx) Rollback() error {
	t.conn.mu.Lock()
	t.conn.staged = nil
	t.conn.mu.Unlock()
	return nil
}

type stubRows struct {
	rows [][]driver.Value
	idx  int
	err  error
}

func (r *stubRows) Columns() []string { return []string{"bucket", "payload"} }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
