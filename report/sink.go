package report

import (
	"fmt"
	"io"
	"sort"
)

// record is one (lineno, code) diagnostic as it arrives.
type record struct {
	line int
	code Code
	seq  int // arrival order, used to keep a stable sort on Dump
}

// Sink accumulates diagnostics for a single compilation and emits them
// sorted ascending by line (spec.md §4.A). It is the component-A contract:
// no deduplication, no concurrency guard. Chai's logging.Logger needs a
// mutex because it fans out across concurrently-compiled packages; this
// compiler processes one translation unit in one goroutine (§5), so the
// mutex the teacher carries is deliberately not reproduced here.
type Sink struct {
	records []record
}

func NewSink() *Sink {
	return &Sink{}
}

// Report appends a diagnostic record. Duplicate (line, code) pairs are
// retained, never deduplicated.
func (s *Sink) Report(line int, code Code) {
	s.records = append(s.records, record{line: line, code: code, seq: len(s.records)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.records) > 0
}

// Count returns the number of recorded diagnostics.
func (s *Sink) Count() int {
	return len(s.records)
}

// Dump writes every record to w, sorted ascending by line; records sharing
// a line retain their original relative (arrival) order, matching the
// "duplicates are preserved in relative order" requirement of §6.4.
func (s *Sink) Dump(w io.Writer) error {
	sorted := make([]record, len(s.records))
	copy(sorted, s.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].line < sorted[j].line
	})

	for _, r := range sorted {
		if _, err := fmt.Fprintf(w, "%d %s\n", r.line, r.code); err != nil {
			return err
		}
	}
	return nil
}
