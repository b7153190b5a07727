package build

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/evanmarlow/givesite/internal/favicon"
	"github.com/evanmarlow/givesite/internal/model"
)

// writeSummary prints the per-organization favicon outcome table. Rounded
// borders on a TTY, plain ASCII otherwise.
func writeSummary(w io.Writer, orgs []model.Organization, results []favicon.Resolution, pretty bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if pretty {
		tw.SetStyle(table.StyleRounded)
	}
	tw.AppendHeader(table.Row{"Organization", "Icon", "Source"})
	for i, org := range orgs {
		icon, source := "—", "none"
		if i < len(results) && results[i].Found() {
			icon, source = results[i].Filename, results[i].Source
		}
		tw.AppendRow(table.Row{org.Name, icon, source})
	}
	tw.Render()
}
