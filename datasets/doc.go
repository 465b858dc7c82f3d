// Package datasets turns a table of tokenized reviews into padded batches.
//
// The backing table has the columns token_ids, score and n_tokens, plus an
// optional set column naming the split a row belongs to. Tables load from CSV
// or SQLite. A Dataset indexes the table and its Loader partitions the rows
// into batches, each sorted by descending length and right padded to the
// longest sequence in that batch.
package datasets
