package lexicon

import (
	"database/sql"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DB is a lexicon backed by a prebuilt SQLite word table: a single
// `words` table with a `word` column, uppercase. The import tooling
// that builds these files lives outside this repo.
type DB struct {
	name string
	db   *sql.DB
	stmt *sql.Stmt
}

// OpenDB opens a word-list database.
func OpenDB(name, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	stmt, err := db.Prepare("SELECT EXISTS(SELECT 1 FROM words WHERE word = ?)")
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{name: name, db: db, stmt: stmt}, nil
}

func (lex *DB) Name() string {
	return lex.name
}

func (lex *DB) HasWord(word string) bool {
	var found bool
	err := lex.stmt.QueryRow(strings.ToUpper(word)).Scan(&found)
	if err != nil {
		log.Err(err).Str("word", word).Str("lexicon", lex.name).
			Msg("word lookup failed")
		return false
	}
	return found
}

// Close releases the underlying database.
func (lex *DB) Close() error {
	lex.stmt.Close()
	return lex.db.Close()
}
