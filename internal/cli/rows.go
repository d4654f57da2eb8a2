package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/tOgg1/chrono/internal/logging"
	"github.com/tOgg1/chrono/internal/timeline"
)

type rowJSON struct {
	Kind     string `json:"kind"`
	Anchor   string `json:"anchor"`
	Decade   int    `json:"decade"`
	Position int    `json:"position"`
	Date     string `json:"date,omitempty"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
}

func newRowsCmd(opts *options) *cobra.Command {
	var (
		search   string
		typeName string
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the planned timeline rows",
		Long:  "Print the decade headers and item rows the timeline would show for a filter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := timeline.DefaultFilter().WithSearch(search)
			if strings.TrimSpace(typeName) != "" {
				typ, ok := timeline.ParseItemType(typeName)
				if !ok {
					return fmt.Errorf("unknown type %q", typeName)
				}
				filter = filter.WithType(typ)
			}
			if _, err := opts.initLogging(false); err != nil {
				return err
			}

			items, err := opts.loadItems(cmd.Context())
			if err != nil {
				return err
			}
			rows := timeline.BuildRows(timeline.Apply(items, filter))
			if dups := timeline.NewAnchorIndex(nil).Rebuild(rows); len(dups) > 0 {
				log := logging.Component("cli")
				log.Warn().Strs("anchors", dups).Msg("duplicate anchors")
			}

			if jsonOut {
				return writeRowsJSON(cmd.OutOrStdout(), rows)
			}
			return writeRowsTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive match on title, creator and tags")
	cmd.Flags().StringVar(&typeName, "type", "", "only rows of this item type")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func writeRowsTable(out io.Writer, rows []timeline.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "No items match the current filters.")
		return err
	}
	tbl := newTable()
	tbl.AddRow("KIND", "ANCHOR", "DATE", "TYPE", "TITLE", "POS")
	for _, row := range rows {
		if row.IsHeader() {
			tbl.AddRow(row.Kind, row.AnchorID, fmt.Sprintf("%ds", row.Decade), "", "", "")
			continue
		}
		tbl.AddRow(row.Kind, row.AnchorID, row.Item.Date.Format("2006-01-02"), row.Item.Type, row.Item.Title, row.PositionIndex)
	}
	return writeTable(out, tbl)
}

func writeRowsJSON(out io.Writer, rows []timeline.Row) error {
	payload := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		entry := rowJSON{
			Kind:     row.Kind.String(),
			Anchor:   row.AnchorID,
			Decade:   row.Decade,
			Position: row.PositionIndex,
		}
		if !row.IsHeader() {
			entry.Date = row.Item.Date.Format("2006-01-02")
			entry.Type = string(row.Item.Type)
			entry.Title = row.Item.Title
		}
		payload = append(payload, entry)
	}
	data, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
