// Package exporter materializes price datasets to their persisted forms
// and loads them back for incremental runs.
//
// Each dataset is written as a triplet: a row-oriented CSV, a columnar
// parquet file, and an embedded DuckDB table. Every write is staged to a
// temporary path and renamed into place, so an artifact is either fully
// replaced or untouched. The CSV loader binds columns by position with an
// explicit has-header flag; it never sniffs data to guess the layout.
package exporter
