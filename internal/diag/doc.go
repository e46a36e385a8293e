// Package diag defines the severity-tagged error model shared by every stage
// of the voice-data build: a fixed code taxonomy, a three-level severity
// lattice (MustFix > Warning > Info) and a Bag collector that accumulates,
// merges and queries diagnostics without ever dropping entries.
//
// Expected data conditions (missing file, bad format, duplicate key) travel
// through bags; plain Go errors are reserved for programming and environment
// failures that must abort the build.
package diag
