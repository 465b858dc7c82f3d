package datasets

import "bytes"
import "path/filepath"
import "strings"
import "testing"

import "github.com/jmoiron/sqlx"
import "github.com/stretchr/testify/require"

const reviewsCSV = `token_ids,score,n_tokens,set
"[5, 6, 7]",8,3,train
4 9,2,2,valid
,10,0,train
"12,13,14,15",0,4,train
`

func TestParseTokenIDs(t *testing.T) {
	for in, want := range map[string]TokenIDs{
		"":          {},
		"1 2 3":     {1, 2, 3},
		"[1, 2, 3]": {1, 2, 3},
		" [ 42 ]\n": {42},
		"7,8\t9":    {7, 8, 9},
	} {
		got, err := ParseTokenIDs(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseTokenIDs("1 two 3")
	require.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(reviewsCSV))
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())
	require.Equal(t, []string{"train", "valid"}, table.Sets())

	r, err := table.Row(0)
	require.NoError(t, err)
	require.Equal(t, TokenIDs{5, 6, 7}, r.TokenIDs)
	require.Equal(t, int64(8), r.Score)

	r, err = table.Row(2)
	require.NoError(t, err)
	require.Empty(t, r.TokenIDs)
	require.Equal(t, int64(0), r.NTokens)

	train := table.Subset("train")
	require.Equal(t, 3, train.Len())
	r, err = train.Row(2)
	require.NoError(t, err)
	require.Equal(t, int64(0), r.Score)
	require.Equal(t, 0, table.Subset("test").Len())
}

func TestWithoutIsComplementOfSubset(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(reviewsCSV))
	require.NoError(t, err)
	rest := table.Without("valid")
	require.Equal(t, table.Subset("train"), rest)
	require.Equal(t, table.Len(), rest.Len()+table.Subset("valid").Len())
	require.Equal(t, table.Len(), table.Without("test").Len())
}

func TestCSVRoundTrip(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(reviewsCSV))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	again, err := LoadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, table, again)
}

func TestNewTableRejectsLengthMismatch(t *testing.T) {
	_, err := NewTable([]Review{
		{TokenIDs: TokenIDs{1}, NTokens: 1},
		{TokenIDs: TokenIDs{1, 2}, NTokens: 3},
	})
	require.EqualError(t, err, "row 1: n_tokens 3 but 2 token ids")

	_, err = NewTable([]Review{{NTokens: -1}})
	require.Error(t, err)
}

func TestLoadSQLite(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "reviews.db")
	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	db.MustExec(`CREATE TABLE reviews (token_ids TEXT, score INTEGER, n_tokens INTEGER, "set" TEXT)`)
	db.MustExec(`INSERT INTO reviews VALUES ('3 4', 7, 2, 'train'), ('[9]', 1, 1, 'valid'), ('', 5, 0, 'train')`)
	require.NoError(t, db.Close())

	table, err := LoadSQLite(path, "reviews", true)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	require.Equal(t, []string{"train", "valid"}, table.Sets())
	r, err := table.Row(1)
	require.NoError(t, err)
	require.Equal(t, TokenIDs{9}, r.TokenIDs)
	require.Equal(t, int64(1), r.Score)

	table, err = LoadSQLite(path, "reviews", false)
	require.NoError(t, err)
	require.Equal(t, []string{""}, table.Sets())

	_, err = LoadSQLite(path, "missing", false)
	require.Error(t, err)
}
