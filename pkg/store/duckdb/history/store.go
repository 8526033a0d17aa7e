package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/de-tools/sheet-atlas/pkg/adapters"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/de-tools/sheet-atlas/pkg/models/store"
	"github.com/google/uuid"
)

const DefaultLimit = 20

// Store keeps the outcome of every table map reload.
type Store interface {
	Add(ctx context.Context, result domain.ReloadResult) error
	List(ctx context.Context, limit int) ([]domain.ReloadResult, error)
}

type historyStore struct {
	db    *sql.DB
	newID func() string
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &historyStore{db: db, newID: uuid.NewString}, nil
}

func (s *historyStore) Add(ctx context.Context, result domain.ReloadResult) error {
	record := adapters.MapDomainReloadToStoreRecord(result)
	if record.ID == "" {
		record.ID = s.newID()
	}

	names, err := json.Marshal(record.TableNames)
	if err != nil {
		return fmt.Errorf("marshal table names: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reload_history (
			id, location, status, tables_loaded, table_names, error, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Location,
		record.Status,
		record.TablesLoaded,
		string(names),
		record.Error,
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reload record: %w", err)
	}
	return nil
}

func (s *historyStore) List(ctx context.Context, limit int) ([]domain.ReloadResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, location, status, tables_loaded, table_names, error, started_at, finished_at
		FROM reload_history
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reload history: %w", err)
	}
	defer rows.Close()

	results := make([]domain.ReloadResult, 0)
	for rows.Next() {
		var (
			record   store.ReloadRecord
			location sql.NullString
			namesRaw sql.NullString
			errMsg   sql.NullString
		)
		if err := rows.Scan(
			&record.ID,
			&location,
			&record.Status,
			&record.TablesLoaded,
			&namesRaw,
			&errMsg,
			&record.StartedAt,
			&record.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reload record: %w", err)
		}
		record.Location = location.String
		if errMsg.Valid {
			msg := errMsg.String
			record.Error = &msg
		}
		record.TableNames = []string{}
		if namesRaw.Valid && namesRaw.String != "" {
			if err := json.Unmarshal([]byte(namesRaw.String), &record.TableNames); err != nil {
				return nil, fmt.Errorf("decode table names of reload %s: %w", record.ID, err)
			}
		}
		results = append(results, adapters.MapStoreRecordToDomainReload(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reload history: %w", err)
	}
	return results, nil
}
