// Package history records every backup, restore and delete run from the CLI
// in a SQLite database, and moves the log in and out as JSONL.
package history

import (
	"database/sql"
	_ "embed"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/retry"
	"github.com/spf13/afero"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// DBFile is the database file name inside the data directory.
const DBFile = "history.db"

var logger = loggo.GetLogger("savekeep.history")

// Another savekeep process may hold the write lock briefly.
const (
	busyAttempts = 5
	busyDelay    = 20 * time.Millisecond
)

// timeFormat has fixed width so that stored times sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Operation names what was run.
type Operation string

// Operations.
const (
	OpBackup  Operation = "backup"
	OpRestore Operation = "restore"
	OpDelete  Operation = "delete"
)

// Entry is one recorded operation.
type Entry struct {
	ID      string    `json:"entry_id"`
	At      time.Time `json:"at"`
	Op      Operation `json:"operation"`
	TitleID string    `json:"title_id"`
	Kind    string    `json:"kind"`
	Folder  string    `json:"folder"`
	Outcome string    `json:"outcome"`
	Reason  string    `json:"reason"`
	Code    int32     `json:"code"`
	Message string    `json:"message"`
}

// Log is the operation history.
type Log struct {
	mu    sync.Mutex
	db    *sql.DB
	clock clock.Clock
}

// Open opens or creates the history database in dataDir.
func Open(dataDir string, clk clock.Clock) (*Log, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := afero.NewOsFs().MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Annotate(err, "creating data dir")
	}
	return open(filepath.Join(dataDir, DBFile), clk)
}

// OpenMemory opens a history that lives only as long as the Log.
func OpenMemory(clk clock.Clock) (*Log, error) {
	return open(":memory:", clk)
}

func open(dsn string, clk clock.Clock) (*Log, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Annotate(err, "opening history")
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "creating history schema")
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &Log{db: db, clock: clk}, nil
}

// Close releases the database.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return errors.Trace(err)
}

// Record stores the outcome of one operation and returns the entry.
func (l *Log) Record(op Operation, info types.TitleInfo, kind types.MediumKind, folder string, res types.Result) (Entry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, errors.Annotate(err, "generating entry id")
	}
	e := Entry{
		ID:      id.String(),
		At:      l.clock.Now().UTC(),
		Op:      op,
		TitleID: info.HexID(),
		Kind:    kind.String(),
		Folder:  folder,
		Outcome: res.Outcome.String(),
		Reason:  res.Reason.String(),
		Code:    res.Code,
		Message: res.Message,
	}
	if err := l.insert(e); err != nil {
		return Entry{}, errors.Trace(err)
	}
	logger.Tracef("recorded %s %s %s: %s", e.Op, e.TitleID, e.Kind, e.Outcome)
	return e, nil
}

const insertSQL = `INSERT OR IGNORE INTO operations
    (entry_id, at, operation, title_id, kind, folder, outcome, reason, code, message)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (l *Log) insert(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return errors.New("history is closed")
	}
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			_, err := l.db.Exec(insertSQL,
				e.ID, e.At.UTC().Format(timeFormat), string(e.Op), e.TitleID, e.Kind,
				e.Folder, e.Outcome, e.Reason, e.Code, e.Message)
			return err
		},
		IsFatalError: func(err error) bool { return !isBusy(err) },
		NotifyFunc: func(err error, attempt int) {
			logger.Debugf("history busy, attempt %d: %v", attempt, err)
		},
		Attempts:    busyAttempts,
		Delay:       busyDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       l.clock,
	})
	return errors.Annotate(retry.LastError(err), "inserting history entry")
}

// isBusy reports whether another process holds the database lock.
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (l *Log) List(limit int) ([]Entry, error) {
	return l.query(`WHERE 1 = 1`, limit)
}

// ForTitle returns up to limit entries of one title, newest first.
func (l *Log) ForTitle(id uint64, limit int) ([]Entry, error) {
	return l.query(`WHERE title_id = ?`, limit, types.TitleInfo{ID: id}.HexID())
}

func (l *Log) query(where string, limit int, args ...any) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil, errors.New("history is closed")
	}

	q := `SELECT entry_id, at, operation, title_id, kind, folder, outcome, reason, code, message
        FROM operations ` + where + ` ORDER BY at DESC, entry_id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, errors.Annotate(err, "querying history")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			at string
			op string
		)
		if err := rows.Scan(&e.ID, &at, &op, &e.TitleID, &e.Kind, &e.Folder, &e.Outcome, &e.Reason, &e.Code, &e.Message); err != nil {
			return nil, errors.Annotate(err, "scanning history entry")
		}
		e.Op = Operation(op)
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, errors.Annotatef(err, "history entry %s", e.ID)
		}
		entries = append(entries, e)
	}
	return entries, errors.Trace(rows.Err())
}
