package kv

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// SQLite stores entries in the kv table of a biblioteca database.
type SQLite struct {
	conn      *sql.DB
	namespace string
}

// NewSQLite returns a store bound to namespace.
func NewSQLite(conn *sql.DB, namespace string) *SQLite {
	return &SQLite{conn: conn, namespace: namespace}
}

// Namespace returns the store's namespace.
func (s *SQLite) Namespace() string {
	return s.namespace
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.conn.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get", key, err)
	}
	return []byte(value), nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, s.namespace, key, string(value))
	return wrap("set", key, err)
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	_, err := s.conn.ExecContext(ctx,
		"DELETE FROM kv WHERE namespace = ? AND key = ?",
		s.namespace, key,
	)
	return wrap("remove", key, err)
}

func (s *SQLite) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT key FROM kv WHERE namespace = ? AND substr(key, 1, ?) = ? ORDER BY key",
		s.namespace, len(prefix), prefix,
	)
	if err != nil {
		return nil, wrap("keys", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, wrap("keys", prefix, err)
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, wrap("keys", prefix, rows.Err())
}
