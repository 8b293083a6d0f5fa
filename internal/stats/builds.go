package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/fivewords/internal/model"
)

const timeLayout = "2006-01-02 15:04"

// RenderBuilds prints the build history as a table.
func RenderBuilds(w io.Writer, builds []model.BuildRecord) error {
	if len(builds) == 0 {
		_, err := fmt.Fprintln(w, "No builds recorded.")
		return err
	}
	headers := []string{"Run", "Started", "Lang", "Source", "Size", "Length", "Words", "Output"}
	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		rows = append(rows, []string{
			shortID(b.RunID),
			b.StartedAt.Local().Format(timeLayout),
			b.Lang,
			b.Source,
			strconv.Itoa(b.Size),
			strconv.Itoa(b.Length),
			strconv.Itoa(b.Count),
			b.OutputPath,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{4: true, 5: true, 6: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
