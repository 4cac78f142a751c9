// Package pipeline ties filtering and aggregation into the single
// recomputation step behind every view. Each interaction builds a new
// filter spec and calls Run; nothing is cached or mutated in place.
package pipeline

import (
	"chatlens/internal/filter"
	"chatlens/internal/parse"
	"chatlens/internal/stats"
)

// Result is one complete recomputation: the spec that produced it, the
// surviving messages in load order, and the aggregates over them.
type Result struct {
	Spec     filter.Spec
	Messages []parse.Message
	Stats    stats.Report
}

// Run applies spec to the table and computes aggregates over the subset.
// Deterministic: the same table and spec always yield the same result.
func Run(table parse.Table, spec filter.Spec) Result {
	msgs := filter.Apply(&table, spec)
	return Result{
		Spec:     spec,
		Messages: msgs,
		Stats:    stats.Compute(msgs),
	}
}
