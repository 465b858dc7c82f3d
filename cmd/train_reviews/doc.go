// Package main trains a review score classifier on a tokenized review table.
//
// The table is a CSV file or an SQLite table with the columns token_ids,
// score, n_tokens and set. Rows of the training set are used for training,
// rows of the validation set for evaluation after every epoch. Build with
// -tags cuda to make the cuda device available.
package main
