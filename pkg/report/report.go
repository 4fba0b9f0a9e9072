package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/rkhozinov/php-config-transofrmer/pkg/pipeline"
	"github.com/rkhozinov/php-config-transofrmer/pkg/transform"
)

// previewLimit is how many rewritten lines are shown per file before the
// preview truncates, matching the summary-first console style.
const previewLimit = 3

// 🖨️ Renderer writes previews, statistics, and run summaries for the console
type Renderer struct {
	w io.Writer
}

// 🏭 NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// 👀 Preview prints the changes a transform run would make, without any
// writes having happened. Shows the first few rewritten lines per file.
func (r *Renderer) Preview(summary *pipeline.Summary, source, output string) {
	fmt.Fprintf(r.w, "Preview of transformations from %s to %s:\n", source, output)
	fmt.Fprintln(r.w, strings.Repeat("=", 60))

	for _, file := range summary.Files {
		changed := file.Changed()
		if len(changed) == 0 {
			fmt.Fprintf(r.w, "\n%s: no changes needed\n", file.Path)
			continue
		}

		fmt.Fprintf(r.w, "\n%s: %d changes\n", file.Path, len(changed))
		for i, line := range changed {
			if i == previewLimit {
				fmt.Fprintf(r.w, "  ... and %d more changes\n", len(changed)-previewLimit)
				break
			}
			num := color.New(color.Faint).Sprintf("Line %d:", line.Number)
			content, _ := transform.SplitEnding(line.New)
			fmt.Fprintf(r.w, "  %s %s\n", num, content)
		}
	}

	fmt.Fprintf(r.w, "\nTotal transformations: %d\n", summary.TotalTransformed)
}

// 📊 Stats prints a per-file table of define counts with overall totals
func (r *Renderer) Stats(summary *pipeline.Summary, source string) {
	fmt.Fprintf(r.w, "Statistics for %s:\n", source)

	data := pterm.TableData{
		{"File", "Defines", "Using getenv", "Transformable", "Skipped"},
	}

	var totalDefines, totalMigrated, totalTransformable, totalSkipped int
	for _, file := range summary.Files {
		data = append(data, []string{
			file.Path,
			strconv.Itoa(file.TotalDefines),
			strconv.Itoa(file.AlreadyMigrated),
			strconv.Itoa(file.Transformed),
			strconv.Itoa(file.Skipped),
		})
		totalDefines += file.TotalDefines
		totalMigrated += file.AlreadyMigrated
		totalTransformable += file.Transformed
		totalSkipped += file.Skipped
	}
	data = append(data, []string{
		"TOTAL",
		strconv.Itoa(totalDefines),
		strconv.Itoa(totalMigrated),
		strconv.Itoa(totalTransformable),
		strconv.Itoa(totalSkipped),
	})

	_ = pterm.DefaultTable.WithHasHeader().WithWriter(r.w).WithData(data).Render()
}

// 📈 Summary prints the closing block of a transform run
func (r *Renderer) Summary(summary *pipeline.Summary) {
	fmt.Fprintln(r.w, "\nSummary:")
	fmt.Fprintf(r.w, "  Files processed: %d\n", summary.FilesProcessed)
	fmt.Fprintf(r.w, "  Files with changes: %d\n", summary.FilesWithChanges)
	fmt.Fprintf(r.w, "  Total transformations: %d\n", summary.TotalTransformed)
	if len(summary.Errors) > 0 {
		fmt.Fprintf(r.w, "  Files with errors: %d\n", len(summary.Errors))
	}
}
