package datasets

import "github.com/pkg/errors"

import "github.com/avgm/reviewscore/parallel"

// Table is the columnar backing store of a dataset
type Table struct {
	tokenIDs []TokenIDs
	scores   []int64
	nTokens  []int64
	sets     []string
}

// NewTable builds a table from rows, checking that n_tokens is the length of token_ids
func NewTable(rows []Review) (*Table, error) {
	err := parallel.ForEachErr(len(rows), 64, func(i int) error {
		var r = &rows[i]
		if r.NTokens < 0 {
			return errors.Errorf("row %d: negative n_tokens %d", i, r.NTokens)
		}
		if int64(len(r.TokenIDs)) != r.NTokens {
			return errors.Errorf("row %d: n_tokens %d but %d token ids", i, r.NTokens, len(r.TokenIDs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	var t = &Table{
		tokenIDs: make([]TokenIDs, len(rows)),
		scores:   make([]int64, len(rows)),
		nTokens:  make([]int64, len(rows)),
		sets:     make([]string, len(rows)),
	}
	for i, r := range rows {
		t.tokenIDs[i] = r.TokenIDs
		t.scores[i] = r.Score
		t.nTokens[i] = r.NTokens
		t.sets[i] = r.Set
	}
	return t, nil
}

// Len is the number of rows
func (t *Table) Len() int {
	return len(t.scores)
}

// Row returns row i of the table
func (t *Table) Row(i int) (Review, error) {
	if i < 0 || i >= t.Len() {
		return Review{}, indexError(i, t.Len())
	}
	return Review{
		TokenIDs: t.tokenIDs[i],
		Score:    t.scores[i],
		NTokens:  t.nTokens[i],
		Set:      t.sets[i],
	}, nil
}

// Sets lists the distinct values of the set column in order of first appearance
func (t *Table) Sets() (o []string) {
	var seen = make(map[string]struct{})
	for _, s := range t.sets {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			o = append(o, s)
		}
	}
	return
}

// Subset returns the rows whose set column equals set, keeping their order
func (t *Table) Subset(set string) *Table {
	return t.filter(func(s string) bool { return s == set })
}

// Without returns the rows whose set column is not set, keeping their order
func (t *Table) Without(set string) *Table {
	return t.filter(func(s string) bool { return s != set })
}

func (t *Table) filter(keep func(set string) bool) *Table {
	var o = new(Table)
	for i, s := range t.sets {
		if !keep(s) {
			continue
		}
		o.tokenIDs = append(o.tokenIDs, t.tokenIDs[i])
		o.scores = append(o.scores, t.scores[i])
		o.nTokens = append(o.nTokens, t.nTokens[i])
		o.sets = append(o.sets, s)
	}
	return o
}
