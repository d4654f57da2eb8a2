package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tOgg1/chrono/internal/timeline"
)

func newDecadesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decades",
		Short: "List decades with item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.initLogging(false); err != nil {
				return err
			}
			items, err := opts.loadItems(cmd.Context())
			if err != nil {
				return err
			}

			rows := timeline.BuildRows(items)
			counts := make(map[int]int)
			for _, row := range rows {
				if !row.IsHeader() {
					counts[row.Decade]++
				}
			}

			out := cmd.OutOrStdout()
			decades := timeline.Decades(rows)
			if len(decades) == 0 {
				_, err := fmt.Fprintln(out, "No items.")
				return err
			}
			tbl := newTable()
			tbl.AddRow("DECADE", "ITEMS", "LINK")
			for _, decade := range decades {
				tbl.AddRow(fmt.Sprintf("%ds", decade), counts[decade], timeline.FormatLink(timeline.DecadeAnchor(decade)))
			}
			return writeTable(out, tbl)
		},
	}
}
