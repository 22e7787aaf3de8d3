package pricefeed

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"nftswapd/internal/core/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	currency TEXT NOT NULL,
	item TEXT NOT NULL,
	trader TEXT NOT NULL,
	side TEXT NOT NULL,
	gross INTEGER NOT NULL,
	fee INTEGER NOT NULL,
	net INTEGER NOT NULL,
	sequence INTEGER NOT NULL,
	recorded_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS trades_pool ON trades (collection, currency, id);
`

const recordBuffer = 1024

// SQLiteRecorder appends trades to an embedded sqlite database. Record is
// fire-and-forget: rows are inserted by a background worker so the apply
// path never blocks on disk.
type SQLiteRecorder struct {
	db *sql.DB

	mu  sync.Mutex
	seq uint32

	queue  chan []tx.Trade
	done   chan struct{}
	closed sync.Once
}

// NewSQLiteRecorder opens (creating if needed) the trade database at path.
// Use ":memory:" for tests.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("pricefeed: open %s: %w", path, err)
	}
	// modernc sqlite serializes internally; a single connection avoids
	// SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("pricefeed: init schema: %w", err)
	}

	r := &SQLiteRecorder{
		db:    db,
		queue: make(chan []tx.Trade, recordBuffer),
		done:  make(chan struct{}),
	}
	go r.worker()
	return r, nil
}

// Record queues trades for insertion. When the buffer is full the batch is
// dropped rather than stalling transaction processing.
func (r *SQLiteRecorder) Record(trades []tx.Trade) {
	if len(trades) == 0 {
		return
	}
	batch := make([]tx.Trade, len(trades))
	copy(batch, trades)
	select {
	case r.queue <- batch:
	default:
		log.Printf("pricefeed: buffer full, dropped %d trades", len(batch))
	}
}

// Recent returns up to limit trades for a pool, newest first.
func (r *SQLiteRecorder) Recent(collection, currency string, limit int) ([]RecordedTrade, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(
		`SELECT collection, currency, item, trader, side, gross, fee, net, sequence, recorded_at
		 FROM trades WHERE collection = ? AND currency = ?
		 ORDER BY id DESC LIMIT ?`,
		collection, currency, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("pricefeed: query: %w", err)
	}
	defer rows.Close()

	var out []RecordedTrade
	for rows.Next() {
		var t RecordedTrade
		if err := rows.Scan(
			&t.Collection, &t.Currency, &t.Item, &t.Trader, &t.Side,
			&t.Gross, &t.Fee, &t.Net, &t.Sequence, &t.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("pricefeed: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Close stops the worker, flushes queued batches and closes the database.
func (r *SQLiteRecorder) Close() error {
	r.closed.Do(func() {
		close(r.queue)
		<-r.done
	})
	return r.db.Close()
}

func (r *SQLiteRecorder) worker() {
	defer close(r.done)
	for batch := range r.queue {
		if err := r.insert(batch); err != nil {
			log.Printf("pricefeed: insert failed: %v", err)
		}
	}
}

func (r *SQLiteRecorder) insert(trades []tx.Trade) error {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	dbtx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := dbtx.Prepare(
		`INSERT INTO trades
		 (collection, currency, item, trader, side, gross, fee, net, sequence, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		dbtx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, t := range trades {
		if _, err := stmt.Exec(
			t.Collection, t.Currency, t.Item, t.Trader, t.Side,
			t.Gross, t.Fee, t.Net, seq, now,
		); err != nil {
			dbtx.Rollback()
			return err
		}
	}
	return dbtx.Commit()
}
