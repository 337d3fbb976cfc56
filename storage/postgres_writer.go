package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"youtube-stats/models"
)

const batchSize = 50

var pgColumnTypes = map[models.ColumnType]string{
	models.TypeString:    "TEXT",
	models.TypeInteger:   "BIGINT",
	models.TypeFloat:     "DOUBLE PRECISION",
	models.TypeTimestamp: "TIMESTAMPTZ",
}

// PostgresWriter loads datasets into a PostgreSQL table.
type PostgresWriter struct {
	db    *sql.DB
	table string
}

// NewPostgresWriter opens a connection to PostgreSQL, creates the table when it
// does not exist, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn, table string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: open")
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "postgres: ping failed after retries")
	}

	pw := &PostgresWriter{db: db, table: table}
	if _, err := pw.db.Exec(createTableSQL(table)); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "postgres: migrate")
	}

	return pw, nil
}

func createTableSQL(table string) string {
	defs := make([]string, len(models.Schema))
	for i, col := range models.Schema {
		def := pq.QuoteIdentifier(col.Name) + " " + pgColumnTypes[col.Type]
		if col.Name == models.ColVideoID || col.Name == models.ColChannelID {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		pq.QuoteIdentifier(table), strings.Join(defs, ",\n\t"))
}

// Load replaces the table contents with the dataset inside one transaction.
func (pw *PostgresWriter) Load(ctx context.Context, ds *models.Dataset) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(pw.table)); err != nil {
		return errors.Wrap(err, "postgres: clear")
	}

	for i := 0; i < len(ds.Rows); i += batchSize {
		end := i + batchSize
		if end > len(ds.Rows) {
			end = len(ds.Rows)
		}
		query, args := insertBatchSQL(pw.table, ds.Columns, ds.Rows[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "postgres: insert rows %d-%d", i, end-1)
		}
	}

	return errors.Wrap(tx.Commit(), "postgres: commit")
}

func insertBatchSQL(table string, columns []string, batch [][]any) (string, []any) {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*len(columns))
	placeholders := make([]string, len(columns))

	for idx, row := range batch {
		base := idx * len(columns)
		for j := range columns {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Destination() string {
	return "postgres:" + pw.table
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
