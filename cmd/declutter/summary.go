package main

import (
	"fmt"
	"path/filepath"

	"declutter/internal/model"
	"declutter/internal/pathutil"
)

// renderSummary formats the end-of-session table: one row per file with its
// outcome, followed by a count line.
func renderSummary(items []model.Item) string {
	rows := summaryRows(items)
	moved, kept, deferred, pending := summaryCounts(items)

	out := renderTable([]string{"File", "Outcome", "Where / Why"}, rows)
	out += fmt.Sprintf("\n%d moved, %d kept, %d deferred", moved, kept, deferred)
	if pending > 0 {
		out += fmt.Sprintf(", %d untouched", pending)
	}
	return out
}

func summaryRows(items []model.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		var outcome, detail string
		switch it.Status {
		case model.StatusMoved:
			outcome = "moved"
			detail = pathutil.CollapseHome(it.Destination)
		case model.StatusSkipped:
			outcome = "kept"
		case model.StatusDeferred:
			outcome = "deferred"
			detail = it.Reason
		default:
			outcome = "untouched"
		}
		rows = append(rows, []string{filepath.Base(it.Path), outcome, detail})
	}
	return rows
}

func summaryCounts(items []model.Item) (moved, kept, deferred, pending int) {
	for _, it := range items {
		switch it.Status {
		case model.StatusMoved:
			moved++
		case model.StatusSkipped:
			kept++
		case model.StatusDeferred:
			deferred++
		default:
			pending++
		}
	}
	return moved, kept, deferred, pending
}
