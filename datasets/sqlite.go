package datasets

import "fmt"

import "github.com/jmoiron/sqlx"
import _ "github.com/mattn/go-sqlite3"
import "github.com/pkg/errors"

// LoadSQLite reads a table from an SQLite database. When withSet is false the
// table has no set column and every row gets an empty set.
func LoadSQLite(path, table string, withSet bool) (*Table, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer db.Close()
	return LoadSQL(db, table, withSet)
}

// LoadSQL reads a table through an open database handle, ordered by rowid
func LoadSQL(db *sqlx.DB, table string, withSet bool) (*Table, error) {
	var set = `'' AS "set"`
	if withSet {
		set = `"set"`
	}
	var query = fmt.Sprintf(`SELECT token_ids, score, n_tokens, %s FROM "%s" ORDER BY rowid`, set, table)

	var rows []Review
	if err := db.Select(&rows, query); err != nil {
		return nil, errors.Wrapf(err, "reading table %s", table)
	}
	return NewTable(rows)
}
