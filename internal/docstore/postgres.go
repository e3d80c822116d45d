package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Postgres keeps every document as a JSONB row in the documents table,
// keyed by (collection, parent, id).
type Postgres struct {
	pool DBPool
}

func NewPostgres(pool DBPool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, ref Ref, dst any) error {
	var data []byte
	err := p.pool.QueryRow(ctx, `
		SELECT data FROM documents
		WHERE collection=$1 AND parent=$2 AND id=$3
	`, ref.Collection.Name, ref.Collection.Parent, ref.ID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select %s: %w", ref.Path(), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", ref.Path(), err)
	}
	return nil
}

func (p *Postgres) Set(ctx context.Context, ref Ref, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ref.Path(), err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO documents (collection, parent, id, data)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (collection, parent, id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()
	`, ref.Collection.Name, ref.Collection.Parent, ref.ID, body)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", ref.Path(), err)
	}
	return nil
}

func (p *Postgres) Merge(ctx context.Context, ref Ref, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ref.Path(), err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO documents (collection, parent, id, data)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (collection, parent, id) DO UPDATE SET data=documents.data || EXCLUDED.data, updated_at=now()
	`, ref.Collection.Name, ref.Collection.Parent, ref.ID, body)
	if err != nil {
		return fmt.Errorf("merge %s: %w", ref.Path(), err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, ref Ref) error {
	_, err := p.pool.Exec(ctx, `
		DELETE FROM documents WHERE collection=$1 AND parent=$2 AND id=$3
	`, ref.Collection.Name, ref.Collection.Parent, ref.ID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", ref.Path(), err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, coll Collection, filter Filter, dst any) error {
	var (
		rows pgx.Rows
		err  error
	)
	if filter.IsZero() {
		rows, err = p.pool.Query(ctx, `
			SELECT data FROM documents
			WHERE collection=$1 AND parent=$2
			ORDER BY created_at, id
		`, coll.Name, coll.Parent)
	} else {
		rows, err = p.pool.Query(ctx, `
			SELECT data FROM documents
			WHERE collection=$1 AND parent=$2 AND data->>$3 = $4
			ORDER BY created_at, id
		`, coll.Name, coll.Parent, filter.Field, fmt.Sprint(filter.Value))
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", coll.Path(), err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("scan %s: %w", coll.Path(), err)
		}
		docs = append(docs, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows %s: %w", coll.Path(), err)
	}

	// Decode through a JSON array so dst can be any slice type.
	body, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", coll.Path(), err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", coll.Path(), err)
	}
	return nil
}
