package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/chief/internal/tasks"
	"github.com/felixgeelhaar/chief/internal/ux"
)

const (
	ruleWidth      = 80
	maxDescription = 60
)

func rule(w io.Writer, s ux.Styles) {
	fmt.Fprintln(w, s.Muted.Render(strings.Repeat("─", ruleWidth)))
}

func hint(w io.Writer, s ux.Styles, format string, args ...interface{}) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf(format, args...)))
}

// renderTasks prints one block per task: glyph, index, category and the
// truncated description, then the step count.
func renderTasks(w io.Writer, s ux.Styles, list []tasks.Task) {
	for i, task := range list {
		fmt.Fprintf(w, "%s [%d] %s: %s\n", s.Glyph(task.Passes), i+1, task.Category, ux.Truncate(task.Description, maxDescription))
		fmt.Fprintf(w, "     Steps: %d\n", len(task.Steps))
	}
}

func progressLine(stats tasks.Stats) string {
	return fmt.Sprintf("%d/%d completed", stats.Completed, stats.Total)
}
