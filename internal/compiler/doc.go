// Package compiler holds the per-module binary encoders and the recipe
// dispatch that feeds them. A recipe declares, as data, which raw sources and
// which already-compiled modules a module needs; the dispatcher resolves the
// dependencies through the raw-data registry (or recursively through itself),
// wraps dependency failures so root cause stays traceable, and applies the
// caller's validation-strictness policy to the content-validation stage before
// the encoder runs.
package compiler
