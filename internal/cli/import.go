package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tOgg1/chrono/internal/archive"
	"github.com/tOgg1/chrono/internal/logging"
)

func newImportCmd(opts *options) *cobra.Command {
	var database string
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON dataset into the SQLite store",
		Long: "Validate a JSON dataset and upsert its records into the SQLite store.\n" +
			"Records that cannot be placed on the timeline are skipped and reported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.initLogging(false); err != nil {
				return err
			}
			target := database
			if target == "" {
				target = opts.cfg.Data.Database
			}
			target, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}

			records, err := archive.ReadRecords(args[0])
			if err != nil {
				return err
			}
			_, rejected := archive.Normalize(records)
			skip := make(map[int]bool, len(rejected))
			log := logging.Component("cli")
			for _, r := range rejected {
				skip[r.Index] = true
				log.Warn().Err(r).Msg("record skipped")
			}
			accepted := make([]archive.Record, 0, len(records)-len(rejected))
			for i, rec := range records {
				if !skip[i] {
					accepted = append(accepted, rec)
				}
			}

			store, err := archive.Open(target)
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := store.Import(cmd.Context(), accepted)
			if err != nil {
				return err
			}
			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s (%d skipped, %d stored)\n",
				imported, target, len(rejected), total)
			return err
		},
	}
	cmd.Flags().StringVar(&database, "database", "", "SQLite database (default data.database)")
	return cmd
}
