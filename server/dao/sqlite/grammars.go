package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"
)

type grammarsRepository struct {
	db *sql.DB
}

func (r *grammarsRepository) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created INTEGER NOT NULL,
		table_data TEXT NOT NULL,
		compiled TEXT NOT NULL
	);`
	_, err := r.db.Exec(stmt)
	return wrapDBError(err)
}

func (r *grammarsRepository) Create(ctx context.Context, name string, tableData []byte, compiled *types.Grammar) (dao.Grammar, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	g := dao.Grammar{ID: id, Name: name, TableData: tableData, Compiled: compiled}

	stmt, err := r.db.Prepare(`INSERT INTO grammars (id, name, created, table_data, compiled) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := convertToDB_Time(time.Now())
	_, err = stmt.ExecContext(ctx, convertToDB_UUID(id), name, now,
		convertToDB_ByteSlice(tableData), convertToDB_GrammarPtr(compiled))
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	return r.Get(ctx, id)
}

func (r *grammarsRepository) scanRow(row *sql.Row) (dao.Grammar, error) {
	var idStr, tableDataStr, compiledStr string
	var created int64
	var g dao.Grammar

	if err := row.Scan(&idStr, &g.Name, &created, &tableDataStr, &compiledStr); err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("corrupt id in DB: %w", err)
	}
	tableData, err := convertFromDB_ByteSlice(tableDataStr)
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("corrupt table_data in DB: %w", err)
	}
	compiled, err := convertFromDB_GrammarPtr(compiledStr)
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("corrupt compiled grammar in DB: %w", err)
	}

	g.ID = id
	g.Created = convertFromDB_Time(created)
	g.TableData = tableData
	g.Compiled = compiled
	return g, nil
}

func (r *grammarsRepository) Get(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created, table_data, compiled FROM grammars WHERE id = ?`, convertToDB_UUID(id))
	return r.scanRow(row)
}

func (r *grammarsRepository) GetByName(ctx context.Context, name string) (dao.Grammar, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created, table_data, compiled FROM grammars WHERE name = ?`, name)
	return r.scanRow(row)
}

func (r *grammarsRepository) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created, table_data, compiled FROM grammars ORDER BY name;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Grammar
	for rows.Next() {
		var idStr, tableDataStr, compiledStr string
		var created int64
		var g dao.Grammar
		if err := rows.Scan(&idStr, &g.Name, &created, &tableDataStr, &compiledStr); err != nil {
			return nil, wrapDBError(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt id in DB: %w", err)
		}
		tableData, err := convertFromDB_ByteSlice(tableDataStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt table_data in DB: %w", err)
		}
		compiled, err := convertFromDB_GrammarPtr(compiledStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt compiled grammar in DB: %w", err)
		}
		g.ID = id
		g.Created = convertFromDB_Time(created)
		g.TableData = tableData
		g.Compiled = compiled
		all = append(all, g)
	}
	return all, rows.Err()
}

func (r *grammarsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g, err := r.Get(ctx, id)
	if err != nil {
		return dao.Grammar{}, err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM grammars WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	return g, nil
}
