// Package ingest turns spreadsheet-style files into org records.
//
// Reading happens in three steps. A format reader (CSV/TSV, XLSX, JSON)
// produces a Table of trimmed headers and string rows. A Mapping assigns a
// source header to each canonical field, either auto-detected from the
// headers, supplied by configuration, or chosen interactively. Normalize
// then projects each row onto an org.Record.
//
// Structural defects in the data (missing ids, duplicate ids, dangling
// managers) are not errors here; they pass through to org.Validate.
package ingest
