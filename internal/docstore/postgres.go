package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       JSONB NOT NULL DEFAULT '{}'::jsonb,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);
`

// PostgresClient stores every collection in a single JSONB table.
type PostgresClient struct {
	db *sql.DB
}

func NewPostgresClient(db *sql.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

// OpenPostgres connects with lib/pq and makes sure the documents table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresClient, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	c := NewPostgresClient(db)
	if err := c.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return nil
}

func (c *PostgresClient) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify(err)
	}
	return &jsonDocument{id: id, data: raw}, nil
}

func (c *PostgresClient) Create(ctx context.Context, collection, id string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3) ON CONFLICT (collection, id) DO NOTHING`,
		collection, id, raw,
	)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (c *PostgresClient) Set(ctx context.Context, collection, id string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, id, raw,
	)
	return classify(err)
}

func (c *PostgresClient) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}
	res, err := c.db.ExecContext(ctx,
		`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, raw,
	)
	return rowsOrNotFound(res, err)
}

func (c *PostgresClient) Increment(ctx context.Context, collection, id, field string, delta float64) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE documents
		 SET data = jsonb_set(data, $3::text[], to_jsonb(COALESCE((data->>$4)::numeric, 0) + $5::numeric))
		 WHERE collection = $1 AND id = $2`,
		collection, id, pq.Array([]string{field}), field, delta,
	)
	return rowsOrNotFound(res, err)
}

func (c *PostgresClient) Delete(ctx context.Context, collection, id string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	return classify(err)
}

func (c *PostgresClient) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	match := make(map[string]any, len(q.Filters))
	for _, f := range q.Filters {
		match[f.Field] = f.Value
	}
	raw, err := json.Marshal(match)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}

	query := `SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY id`
	args := []any{collection, raw}
	if q.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, q.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		out = append(out, &jsonDocument{id: id, data: data})
	}
	return out, rows.Err()
}

func (c *PostgresClient) Close() error {
	return c.db.Close()
}

func rowsOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps unique violations to ErrAlreadyExists and annotates other driver errors
// with their SQLSTATE.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("postgres %s: %w", pqErr.Code, err)
	}
	return err
}
