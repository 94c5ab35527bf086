// ABOUTME: Show-notes timeline rendering
// ABOUTME: Writes per-group timestamps as plain text or a terminal table
package notes

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/oliverlab/cantor/internal/episode"
	"github.com/oliverlab/cantor/internal/stitch"
)

// WritePlain writes one "timestamp<TAB>title" line per group, the format
// pasted into episode descriptions.
func WritePlain(w io.Writer, ep *episode.Episode, entries []stitch.TimelineEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Timestamp(), ep.GroupTitle(e.Group)); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the plain listing to path.
func WriteFile(path string, ep *episode.Episode, entries []stitch.TimelineEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write show notes: %w", err)
	}
	if err := WritePlain(f, ep, entries); err != nil {
		f.Close()
		return fmt.Errorf("write show notes: %w", err)
	}
	return f.Close()
}

// RenderTable renders the timeline for a terminal.
func RenderTable(ep *episode.Episode, entries []stitch.TimelineEntry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Offset (ms)", "Title"})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			strconv.Itoa(e.Group + 1),
			e.Timestamp(),
			strconv.FormatInt(e.OffsetMS, 10),
			ep.GroupTitle(e.Group),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}
