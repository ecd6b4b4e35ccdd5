package tracing

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/glebarez/go-sqlite"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
	"github.com/zeozeozeo/psxbus/emulator"
)

// SQLiteWriter writes DMA transfers to a SQLite database. Transfers are
// buffered and inserted in batches.
type SQLiteWriter struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	session   string
	seq       uint64
	transfers []emulator.DmaTransfer
	batchSize int
	err       error
	closed    bool
}

// NewSQLiteWriter creates a new SQLiteWriter. If path is empty, a unique
// file name is generated when the writer is initialized.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		path:      path,
		session:   xid.New().String(),
		batchSize: 4096,
	}
}

// Path returns the database file name.
func (w *SQLiteWriter) Path() string {
	return w.path
}

// Session returns the identifier shared by all the rows of this writer.
func (w *SQLiteWriter) Session() string {
	return w.session
}

// Init opens the database and creates the transfer table. The buffered
// transfers are flushed when the program exits through atexit.
func (w *SQLiteWriter) Init() error {
	if w.path == "" {
		w.path = "psxbus_trace_" + w.session + ".sqlite3"
	}

	db, err := sql.Open("sqlite", w.path)
	if err != nil {
		return fmt.Errorf("tracing: open %s: %w", w.path, err)
	}
	w.DB = db

	_, err = w.Exec(`
		CREATE TABLE IF NOT EXISTS dma_transfers (
			id        TEXT PRIMARY KEY,
			session   TEXT NOT NULL,
			seq       INTEGER NOT NULL,
			port      TEXT NOT NULL,
			sync      TEXT NOT NULL,
			direction TEXT NOT NULL,
			base      INTEGER NOT NULL,
			words     INTEGER NOT NULL,
			nodes     INTEGER NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("tracing: create table: %w", err)
	}

	w.statement, err = w.Prepare(`
		INSERT INTO dma_transfers
			(id, session, seq, port, sync, direction, base, words, nodes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("tracing: prepare insert: %w", err)
	}

	atexit.Register(func() {
		if err := w.Close(); err != nil {
			fmt.Println(err)
		}
	})

	return nil
}

// TraceDma buffers a transfer, flushing the buffer when it is full.
func (w *SQLiteWriter) TraceDma(transfer emulator.DmaTransfer) {
	w.transfers = append(w.transfers, transfer)
	if len(w.transfers) >= w.batchSize {
		if err := w.Flush(); err != nil && w.err == nil {
			w.err = err
		}
	}
}

// Flush writes all the buffered transfers to the database.
func (w *SQLiteWriter) Flush() error {
	if len(w.transfers) == 0 {
		return nil
	}

	tx, err := w.Begin()
	if err != nil {
		return fmt.Errorf("tracing: begin: %w", err)
	}

	stmt := tx.Stmt(w.statement)
	for _, t := range w.transfers {
		w.seq++
		_, err := stmt.Exec(
			xid.New().String(),
			w.session,
			w.seq,
			t.Port.String(),
			t.Sync.String(),
			t.Direction.String(),
			t.Base,
			t.Words,
			t.Nodes,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("tracing: insert transfer %d: %w", w.seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tracing: commit: %w", err)
	}

	w.transfers = nil
	return nil
}

// Close flushes the remaining transfers and closes the database. It returns
// the first error met while flushing in the background.
func (w *SQLiteWriter) Close() error {
	if w.closed || w.DB == nil {
		return nil
	}
	w.closed = true

	err := w.Flush()
	if err == nil {
		err = w.err
	}

	w.statement.Close()
	if cerr := w.DB.Close(); err == nil {
		err = cerr
	}
	return err
}
