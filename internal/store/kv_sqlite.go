package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
)

type sqliteKeyValueStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteKeyValueStore returns a [KeyValueStore] over the kv table of the
// given SQLite connection. The table is created by the embedded goose
// migration; callers are expected to have run [DB.Migrate] first.
func NewSQLiteKeyValueStore(db *DB, logger *logger.Logger) KeyValueStore {
	return &sqliteKeyValueStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	var value []byte
	row := s.DB.QueryRowContext(ctx, getKVValue, key)

	scanErr := row.Scan(&value)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "sqliteKeyValueStore.Get").
			Str("key", key).
			Msg("failed to scan kv row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return value, nil
}

func (s *sqliteKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, setKVValue, key, value)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKeyValueStore.Set").
			Str("key", key).
			Msg("failed to execute upsert for kv value")
		return fmt.Errorf("%w (key=%s): %w", ErrExecutingStatement, key, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, deleteKVValue, key)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKeyValueStore.Delete").
			Str("key", key).
			Msg("failed to execute delete for kv value")
		return fmt.Errorf("%w (key=%s): %w", ErrExecutingStatement, key, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, listKVKeys, prefix)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKeyValueStore.Keys").
			Str("prefix", prefix).
			Msg("failed to execute query for listing kv keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if scanErr := rows.Scan(&key); scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteKeyValueStore.Keys").
				Str("prefix", prefix).
				Msg("failed to scan kv key row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		keys = append(keys, key)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteKeyValueStore.Keys").
			Str("prefix", prefix).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating kv key rows: %w", rowsErr)
	}

	return keys, nil
}

func (s *sqliteKeyValueStore) Close() error {
	return s.DB.Close()
}
