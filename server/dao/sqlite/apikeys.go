package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"
)

type apiKeysRepository struct {
	db *sql.DB
}

func (r *apiKeysRepository) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS api_keys (
		id TEXT NOT NULL PRIMARY KEY,
		owner TEXT NOT NULL,
		key TEXT NOT NULL UNIQUE,
		created INTEGER NOT NULL
	);`
	_, err := r.db.Exec(stmt)
	return wrapDBError(err)
}

func (r *apiKeysRepository) Create(ctx context.Context, owner string) (dao.APIKey, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate ID: %w", err)
	}
	keyUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate key: %w", err)
	}

	stmt, err := r.db.Prepare(`INSERT INTO api_keys (id, owner, key, created) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(ctx, convertToDB_UUID(id), owner, keyUUID.String(), convertToDB_Time(now))
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}

	return dao.APIKey{ID: id, Owner: owner, Key: keyUUID.String(), Created: now}, nil
}

func (r *apiKeysRepository) GetByKey(ctx context.Context, key string) (dao.APIKey, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner, key, created FROM api_keys WHERE key = ?`, key)
	return scanAPIKey(row)
}

func scanAPIKey(row *sql.Row) (dao.APIKey, error) {
	var idStr string
	var k dao.APIKey
	var created int64
	if err := row.Scan(&idStr, &k.Owner, &k.Key, &created); err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("corrupt id in DB: %w", err)
	}
	k.ID = id
	k.Created = convertFromDB_Time(created)
	return k, nil
}

func (r *apiKeysRepository) GetAll(ctx context.Context) ([]dao.APIKey, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, owner, key, created FROM api_keys ORDER BY created;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.APIKey
	for rows.Next() {
		var idStr string
		var k dao.APIKey
		var created int64
		if err := rows.Scan(&idStr, &k.Owner, &k.Key, &created); err != nil {
			return nil, wrapDBError(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt id in DB: %w", err)
		}
		k.ID = id
		k.Created = convertFromDB_Time(created)
		all = append(all, k)
	}
	return all, rows.Err()
}

func (r *apiKeysRepository) Delete(ctx context.Context, id uuid.UUID) (dao.APIKey, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner, key, created FROM api_keys WHERE id = ?`, convertToDB_UUID(id))
	k, err := scanAPIKey(row)
	if err != nil {
		return dao.APIKey{}, err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM api_keys WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}
	return k, nil
}
