// Package files provides file system operations for the OMIE price
// ingestion engine.
//
// Discovery: enumerates raw daily files in the data directory, parsing
// names against the configured <prefix>_YYYYMMDD.N pattern and mapping the
// revision suffix to a market zone.
//
// SelectLatest: collapses re-published files to the highest revision per
// (date, zone).
//
// Manager: file primitives, most importantly ReplaceFile, the stage-and-
// rename write that keeps dataset replacement all-or-nothing.
package files
