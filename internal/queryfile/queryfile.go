// Package queryfile parses the engine's three line-oriented external
// input formats: query input, thresholds, and cluster selections.
// Every parse error here is fatal per the engine's error taxonomy; this
// package reports them with fmt.Errorf and leaves retry policy to the
// caller.
package queryfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kittclouds/daatkit/pkg/daat"
)

// Query is one parsed line of query input: an id and its raw term ids,
// not yet collapsed into TermWeights (daat.NewQuery does that).
type Query struct {
	ID      string
	TermIDs []daat.TermID
}

// ParseQueries reads "query_id\tterm_id term_id ..." lines, one query
// per line. Blank lines are skipped.
func ParseQueries(r io.Reader) ([]Query, error) {
	scanner := bufio.NewScanner(r)
	var queries []Query
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			return nil, fmt.Errorf("queryfile: line %d: missing tab separator between query_id and terms", lineNo)
		}
		id := line[:tab]
		fields := strings.Fields(line[tab+1:])
		termIDs := make([]daat.TermID, 0, len(fields))
		for _, f := range fields {
			t, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("queryfile: line %d: invalid term id %q: %w", lineNo, f, err)
			}
			termIDs = append(termIDs, daat.TermID(t))
		}
		queries = append(queries, Query{ID: id, TermIDs: termIDs})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("queryfile: reading query input: %w", err)
	}
	return queries, nil
}

// ParseThresholds reads one decimal float per line, positionally
// aligned with a query list. It returns an error if the line count
// doesn't match expectedCount (the "length mismatch" fatal configuration
// error in the engine's error taxonomy).
func ParseThresholds(r io.Reader, expectedCount int) ([]float32, error) {
	scanner := bufio.NewScanner(r)
	var out []float32
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 32)
		if err != nil {
			return nil, fmt.Errorf("queryfile: thresholds line %d: invalid float %q: %w", lineNo, line, err)
		}
		out = append(out, float32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("queryfile: reading thresholds: %w", err)
	}
	if len(out) != expectedCount {
		return nil, fmt.Errorf("%w: thresholds file has %d lines, expected %d", daat.ErrLengthMismatch, len(out), expectedCount)
	}
	return out, nil
}

// ClusterSelection maps a query id to the ordered cluster ids an
// ordered-range query should visit for it.
type ClusterSelection map[string][]daat.ClusterID

// ParseClusterSelections reads "query_id : cluster_id cluster_id ..."
// lines, separated by any run of whitespace or commas after the colon.
// Query ids absent from the file imply an empty selection.
func ParseClusterSelections(r io.Reader) (ClusterSelection, error) {
	scanner := bufio.NewScanner(r)
	sel := make(ClusterSelection)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return nil, fmt.Errorf("queryfile: cluster selection line %d: missing ':' separator", lineNo)
		}
		id := strings.TrimSpace(line[:colon])
		rest := strings.FieldsFunc(line[colon+1:], func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		ids := make([]daat.ClusterID, 0, len(rest))
		for _, f := range rest {
			c, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("queryfile: cluster selection line %d: invalid cluster id %q: %w", lineNo, f, err)
			}
			ids = append(ids, daat.ClusterID(c))
		}
		sel[id] = append(sel[id], ids...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("queryfile: reading cluster selections: %w", err)
	}
	return sel, nil
}

// For selects query's cluster sequence, or nil if it has none.
func (s ClusterSelection) For(queryID string) []daat.ClusterID {
	return s[queryID]
}
