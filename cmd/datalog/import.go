package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wbrown/janus-triples/datalog/storage"
	"go.uber.org/zap"
)

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Write a badger snapshot from an EDN or YAML dataset",
		Long: `import reads the triples in --data and replaces the snapshot held in the
--badger directory with them, keeping their order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := c.cfg.Data
			if data.Path == "" || data.Badger == "" {
				return fmt.Errorf("import needs both --data and --badger")
			}

			triples, err := storage.FileSupplier{Path: data.Path}.Triples()
			if err != nil {
				return err
			}

			db, err := storage.OpenBadger(data.Badger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := storage.WriteBadgerSnapshot(db, triples); err != nil {
				return err
			}
			c.logger.Info("snapshot written",
				zap.String("badger", data.Badger),
				zap.Int("triples", len(triples)))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d triples into %s\n", len(triples), data.Badger)
			return nil
		},
	}
}
