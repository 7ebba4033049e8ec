// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the embedded portfolio database: an in-memory
// SQLite engine whose full state is snapshotted to a single file, plus one
// repository per entity built on top of it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// DefaultSaveDelay is the coalescing window for deferred flushes. Deferred
// flushes are only used for read-triggered counters; every other mutation
// snapshots synchronously.
const DefaultSaveDelay = 100 * time.Millisecond

// timeFormat is the storage layout for timestamps. It matches what SQLite's
// CURRENT_TIMESTAMP produces so Go-written and engine-written values parse
// the same way.
const timeFormat = "2006-01-02 15:04:05"

// Store is the process-wide handle to the in-memory engine. All operations
// are serialized behind a single mutex: one logical operation completes
// before the next begins, and a mutation and its snapshot flush are atomic
// with respect to other operations.
type Store struct {
	mu        sync.Mutex
	db        *sql.DB
	path      string
	logger    *slog.Logger
	saveDelay time.Duration
	dirty     bool
	saveTimer *time.Timer
	closed    bool
}

// Result reports the outcome of a mutating statement.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Open loads the snapshot at path into a fresh in-memory database (or
// starts empty when no snapshot exists), applies migrations, writes an
// initial snapshot and returns the handle. The snapshot directory is
// created if needed.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// A :memory: database exists per connection; everything must share one.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:        db,
		path:      path,
		logger:    logger,
		saveDelay: DefaultSaveDelay,
	}

	if _, err := os.Stat(path); err == nil {
		logger.Info("loading snapshot", "path", path)
		if err := s.restore(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
	} else {
		logger.Info("creating new database", "path", path)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := s.Flush(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("writing initial snapshot: %w", err)
	}

	logger.Info("store initialized", "path", path)
	return s, nil
}

// restore copies every table (schema and rows) from the snapshot file into
// the in-memory database. The goose version table is carried over so that
// migrations stay incremental across restarts.
func (s *Store) restore() error {
	if _, err := s.db.Exec("ATTACH DATABASE " + quoteString(s.path) + " AS snapshot"); err != nil {
		return fmt.Errorf("attaching snapshot: %w", err)
	}
	defer func() {
		if _, err := s.db.Exec("DETACH DATABASE snapshot"); err != nil {
			s.logger.Error("detaching snapshot", "error", err)
		}
	}()

	rows, err := s.db.Query(
		`SELECT name, sql FROM snapshot.sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("reading snapshot schema: %w", err)
	}

	type table struct{ name, ddl string }
	var tables []table
	for rows.Next() {
		var t table
		if err := rows.Scan(&t.name, &t.ddl); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scanning snapshot schema: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterating snapshot schema: %w", err)
	}
	_ = rows.Close()

	for _, t := range tables {
		if _, err := s.db.Exec(t.ddl); err != nil {
			return fmt.Errorf("recreating table %s: %w", t.name, err)
		}
		copyStmt := fmt.Sprintf("INSERT INTO main.%q SELECT * FROM snapshot.%q", t.name, t.name)
		if _, err := s.db.Exec(copyStmt); err != nil {
			return fmt.Errorf("copying table %s: %w", t.name, err)
		}
	}

	// Indexes are recreated after the data copy.
	idxRows, err := s.db.Query(
		`SELECT sql FROM snapshot.sqlite_master
		 WHERE type = 'index' AND sql IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("reading snapshot indexes: %w", err)
	}
	var indexes []string
	for idxRows.Next() {
		var ddl string
		if err := idxRows.Scan(&ddl); err != nil {
			_ = idxRows.Close()
			return fmt.Errorf("scanning snapshot indexes: %w", err)
		}
		indexes = append(indexes, ddl)
	}
	if err := idxRows.Err(); err != nil {
		_ = idxRows.Close()
		return fmt.Errorf("iterating snapshot indexes: %w", err)
	}
	_ = idxRows.Close()

	for _, ddl := range indexes {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("recreating index: %w", err)
		}
	}

	return nil
}

// QueryAll executes a read statement and returns all matching rows as
// field-keyed mappings.
func (s *Store) QueryAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryAllLocked(ctx, query, args...)
}

func (s *Store) queryAllLocked(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.wrapError("query", query, args, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, s.wrapError("query", query, args, err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, s.wrapError("query", query, args, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrapError("query", query, args, err)
	}
	return result, nil
}

// QueryOne executes a read statement and returns the first row, or
// ErrNotFound when nothing matches.
func (s *Store) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := s.QueryAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Exec executes a mutating statement and snapshots the database to disk
// before returning. Durability over write throughput: request volume is low
// and losing an admin edit on crash is not acceptable.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.execLocked(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}

	s.dirty = true
	if err := s.flushLocked(); err != nil {
		// The in-memory state stays the source of truth; only durability
		// is at risk. Never roll back the mutation.
		s.logger.Error("snapshot flush failed", "error", err)
	}
	return res, nil
}

// ExecDeferred executes a mutating statement and schedules a coalesced
// flush instead of a synchronous one. Used for fire-and-forget counters
// triggered by reads, where losing the tail of a burst is tolerable.
func (s *Store) ExecDeferred(ctx context.Context, query string, args ...any) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.execLocked(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}

	s.dirty = true
	if s.saveTimer == nil {
		s.saveTimer = time.AfterFunc(s.saveDelay, s.deferredFlush)
	} else {
		s.saveTimer.Reset(s.saveDelay)
	}
	return res, nil
}

func (s *Store) execLocked(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, s.wrapError("exec", query, args, err)
	}

	var result Result
	if id, err := res.LastInsertId(); err == nil {
		result.LastInsertID = id
	}
	if n, err := res.RowsAffected(); err == nil {
		result.RowsAffected = n
	}
	return result, nil
}

// Statement pairs SQL text with its arguments for batched execution.
type Statement struct {
	Query string
	Args  []any
}

// ExecBatch executes the statements in order under one lock and snapshots
// once at the end. The batch stops at the first error; statements already
// executed are kept and still flushed.
func (s *Store) ExecBatch(ctx context.Context, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var execErr error
	for _, st := range stmts {
		if _, err := s.execLocked(ctx, st.Query, st.Args...); err != nil {
			execErr = err
			break
		}
		s.dirty = true
	}
	if s.dirty {
		if err := s.flushLocked(); err != nil {
			s.logger.Error("snapshot flush failed", "error", err)
		}
	}
	return execErr
}

func (s *Store) deferredFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveTimer = nil
	if s.closed {
		return
	}
	if err := s.flushLocked(); err != nil {
		s.logger.Error("deferred snapshot flush failed", "error", err)
	}
}

// Flush writes the full database state to the snapshot file.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	return s.flushLocked()
}

// FlushIfDirty flushes only when mutations happened since the last
// snapshot. Called periodically as a safety net for deferred flushes.
func (s *Store) FlushIfDirty() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.flushLocked()
}

// flushLocked rewrites the whole snapshot file: VACUUM INTO a temporary
// file, then atomically rename over the snapshot path.
func (s *Store) flushLocked() error {
	tmp := s.path + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale snapshot temp file: %w", err)
	}

	if _, err := s.db.Exec("VACUUM INTO " + quoteString(tmp)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	s.dirty = false
	return nil
}

// Close performs a final flush and releases the engine. Safe to call once;
// the store must not be used afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}

	var flushErr error
	if err := s.flushLocked(); err != nil {
		s.logger.Error("final snapshot flush failed", "error", err)
		flushErr = err
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return flushErr
}

// wrapError logs the failing statement with full context and returns a
// typed error that carries none of it, so internals never leak to clients.
func (s *Store) wrapError(op, query string, args []any, err error) error {
	s.logger.Error("statement failed",
		"op", op,
		"error", err,
		"query", strings.Join(strings.Fields(query), " "),
		"args", fmt.Sprintf("%v", args),
	)
	if isConstraintError(err) {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return fmt.Errorf("%w: %v", ErrQueryFailed, err)
}

// quoteString quotes a string for direct inclusion in SQL text, for the
// few statements (ATTACH, VACUUM INTO) that cannot take parameters.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
