package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wbrown/janus-triples/datalog/storage"
	"go.uber.org/zap"
)

// errNoDataset is returned when neither --data nor --badger is configured
var errNoDataset = errors.New("no dataset: set --data or --badger")

// cli carries state shared by all subcommands of one invocation
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "datalog",
		Short: "Query triple datasets with Datalog",
		Long: `datalog runs conjunctive Datalog queries over a set of [entity attribute value]
triples loaded from an EDN or YAML file, or from a badger snapshot directory.

Example:
  datalog query --data movies.edn '[:find ?year :where [?id :movie/title "Alien"] [?id :movie/year ?year]]'`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.v, c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg

			logger, err := newLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (YAML)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("data", "", "dataset file (.edn, .yaml or .yml)")
	flags.String("badger", "", "badger snapshot directory")
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("data.path", flags.Lookup("data"))
	_ = c.v.BindPFlag("data.badger", flags.Lookup("badger"))

	rootCmd.AddCommand(newQueryCmd(c), newImportCmd(c), newReplCmd(c))
	return rootCmd
}

// newLogger builds a production zap logger at the given level
func newLogger(level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewProductionConfig()
	config.Level = atomic
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// openSupplier picks the triple source named by the data config.
// The returned closer releases the badger handle when one was opened.
func openSupplier(data DataConfig) (storage.Supplier, io.Closer, error) {
	switch {
	case data.Badger != "":
		s, err := storage.OpenBadgerSupplier(data.Badger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case data.Path != "":
		return storage.FileSupplier{Path: data.Path}, io.NopCloser(nil), nil
	default:
		return nil, nil, errNoDataset
	}
}

// loadDatabase builds the in-memory store for a command
func (c *cli) loadDatabase() (*storage.Database, error) {
	supplier, closer, err := openSupplier(c.cfg.Data)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	db, err := storage.Load(supplier)
	if err != nil {
		return nil, err
	}
	stats := db.Stats()
	c.logger.Info("dataset loaded",
		zap.String("path", c.cfg.Data.Path),
		zap.String("badger", c.cfg.Data.Badger),
		zap.Int("triples", stats.Triples),
		zap.Int("entities", stats.Entities),
		zap.Int("attributes", stats.Attributes))
	return db, nil
}
