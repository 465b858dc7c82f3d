package datasets

import "database/sql/driver"
import "strconv"
import "strings"
import "unicode"

import "github.com/pkg/errors"

// Review is one row of the input table
type Review struct {
	TokenIDs TokenIDs `csv:"token_ids" db:"token_ids"`
	Score    int64    `csv:"score" db:"score"`
	NTokens  int64    `csv:"n_tokens" db:"n_tokens"`
	Set      string   `csv:"set" db:"set"`
}

// TokenIDs is a tokenized review. In text form the ids are separated by
// spaces or commas and may be wrapped in brackets: "1 2 3", "[1, 2, 3]".
type TokenIDs []int64

func isSeparator(r rune) bool {
	return r == ',' || r == '[' || r == ']' || unicode.IsSpace(r)
}

// ParseTokenIDs parses the text form of a token id sequence
func ParseTokenIDs(s string) (TokenIDs, error) {
	var fields = strings.FieldsFunc(s, isSeparator)
	var ids = make(TokenIDs, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "token id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t TokenIDs) String() string {
	var b strings.Builder
	for i, id := range t {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (t *TokenIDs) UnmarshalCSV(s string) error {
	ids, err := ParseTokenIDs(s)
	if err != nil {
		return err
	}
	*t = ids
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller
func (t TokenIDs) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for text and blob columns
func (t *TokenIDs) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TokenIDs{}
		return nil
	case string:
		return t.UnmarshalCSV(v)
	case []byte:
		return t.UnmarshalCSV(string(v))
	default:
		return errors.Errorf("cannot scan %T into token ids", src)
	}
}

// Value implements driver.Valuer
func (t TokenIDs) Value() (driver.Value, error) {
	return t.String(), nil
}
