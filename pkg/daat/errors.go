package daat

import "errors"

// Configuration errors are detected once, at query-setup time, never
// mid-traversal: an unknown strategy name, a strategy that needs wand
// data or a cluster map the caller didn't supply, or an auxiliary file
// (thresholds, cluster selection) whose line count doesn't match the
// query count. All are fatal; the engine has no recoverable error path
// on the hot path.
var (
	ErrUnknownStrategy  = errors.New("daat: unknown strategy")
	ErrMissingWandData  = errors.New("daat: strategy requires wand data but cursors were built without it")
	ErrMissingClusterMap = errors.New("daat: strategy requires a cluster map but none was supplied")
	ErrLengthMismatch   = errors.New("daat: auxiliary file line count does not match query count")
)
