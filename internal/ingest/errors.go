// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package ingest

import "fmt"

// IngestError is a typed ingestion failure. Callers decide whether to keep
// stale data or surface the error; the normalizer never panics past this
// boundary.
type IngestError struct {
	// Source identifies the feed: "leaderboard" or "posts".
	Source string
	// Op is the failing operation: "decode" or "fetch".
	Op  string
	Err error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %s failed: %v", e.Source, e.Op, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func newDecodeError(source string, err error) *IngestError {
	return &IngestError{Source: source, Op: "decode", Err: err}
}
