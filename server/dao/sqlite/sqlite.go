// Package sqlite is a dao.Store backed by modernc.org/sqlite, in the style
// of the teacher's server/dao/sqlite package: one *sql.DB shared by every
// repository, hand-written SQL, and rezi for binary-blob columns.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	sqlitelib "modernc.org/sqlite"
)

type store struct {
	dbFilename string
	db         *sql.DB

	grammars *grammarsRepository
	keys     *apiKeysRepository
}

// NewDatastore opens (creating if needed) a sqlite-backed dao.Store rooted
// at storageDir.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "goldserver.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)
	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.grammars = &grammarsRepository{db: st.db}
	if err := st.grammars.init(); err != nil {
		return nil, err
	}

	st.keys = &apiKeysRepository{db: st.db}
	if err := st.keys.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Grammars() dao.GrammarRepository { return s.grammars }
func (s *store) APIKeys() dao.APIKeyRepository   { return s.keys }

func (s *store) Close() error {
	return s.db.Close()
}

func convertToDB_UUID(u uuid.UUID) string   { return u.String() }
func convertToDB_Time(t time.Time) int64    { return t.Unix() }
func convertFromDB_Time(unix int64) time.Time { return time.Unix(unix, 0) }

func convertToDB_ByteSlice(b []byte) string {
	if len(b) < 1 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

func convertFromDB_ByteSlice(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// convertToDB_GrammarPtr rezi-encodes a compiled grammar for storage, the
// same way the teacher's sqlite.go rezi-encodes a *game.State into a TEXT
// column rather than re-decoding the original GOLD table bytes on every
// server restart.
func convertToDB_GrammarPtr(g *types.Grammar) string {
	if g == nil {
		return ""
	}
	return convertToDB_ByteSlice(rezi.EncBinary(g))
}

func convertFromDB_GrammarPtr(s string) (*types.Grammar, error) {
	if s == "" {
		return nil, nil
	}
	data, err := convertFromDB_ByteSlice(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	g := &types.Grammar{}
	if _, err := rezi.DecBinary(data, g); err != nil {
		return nil, fmt.Errorf("decode compiled grammar: %w", err)
	}
	return g, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlitelib.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 { // SQLITE_CONSTRAINT
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlitelib.ErrorCodeString[sqliteErr.Code()])
	}
	if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
