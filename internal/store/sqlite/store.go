// Package sqlite persists daily bars for offline backtesting.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"aitrader/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const insertBatchSize = 500

// Store reads and writes daily bars in a single SQLite database.
type Store struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// New opens (and if needed initializes) the bar database with WAL mode.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened database at %s", dbPath)
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS bars_daily (
			symbol  TEXT    NOT NULL,
			ts      INTEGER NOT NULL,
			open    REAL    NOT NULL,
			high    REAL    NOT NULL,
			low     REAL    NOT NULL,
			close   REAL    NOT NULL,
			volume  REAL,
			PRIMARY KEY (symbol, ts)
		);
	`)
	return err
}

// WriteBars upserts bars for a symbol in batched transactions.
func (s *Store) WriteBars(symbol string, bars model.BarSeries) error {
	for off := 0; off < len(bars); off += insertBatchSize {
		hi := off + insertBatchSize
		if hi > len(bars) {
			hi = len(bars)
		}
		if err := s.insertBatch(symbol, bars[off:hi]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertBatch(symbol string, bars model.BarSeries) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bars_daily (symbol, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for i := range bars {
		b := &bars[i]
		if _, err := stmt.Exec(symbol, b.TS.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite insert bar: %w", err)
		}
	}
	return tx.Commit()
}

// ReadBars reads bars for a symbol with timestamps in [start, end],
// ordered by timestamp ascending for correct replay order.
func (s *Store) ReadBars(symbol string, start, end time.Time) (model.BarSeries, error) {
	rows, err := s.db.Query(`
		SELECT ts, open, high, low, close, volume
		FROM bars_daily
		WHERE symbol = ? AND ts >= ? AND ts <= ?
		ORDER BY ts ASC
	`, symbol, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("sqlite query bars: %w", err)
	}
	defer rows.Close()

	var bars model.BarSeries
	for rows.Next() {
		var b model.Bar
		var tsUnix int64
		if err := rows.Scan(&tsUnix, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("sqlite scan bar: %w", err)
		}
		b.TS = time.Unix(tsUnix, 0).UTC()
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}
