package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReloadHistorySchema = `
	CREATE TABLE IF NOT EXISTS reload_history (
		id VARCHAR NOT NULL PRIMARY KEY,
		location VARCHAR,
		status VARCHAR NOT NULL,
		tables_loaded INTEGER NOT NULL DEFAULT 0,
		table_names JSON,
		error VARCHAR NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	ReloadHistorySchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
