// Package cli is the twentyq command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaronzipp/twenty-questions/internal/catalog"
	"github.com/aaronzipp/twenty-questions/internal/config"
	"github.com/aaronzipp/twenty-questions/internal/game"
	"github.com/aaronzipp/twenty-questions/internal/handlers"
	"github.com/aaronzipp/twenty-questions/internal/logging"
	"github.com/aaronzipp/twenty-questions/internal/metrics"
	"github.com/aaronzipp/twenty-questions/internal/reply"
	"github.com/aaronzipp/twenty-questions/internal/render"
	"github.com/aaronzipp/twenty-questions/internal/store"
	"github.com/aaronzipp/twenty-questions/internal/store/sqlite"
)

// app is the state shared by all subcommands of one invocation
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Game

	dbPath      string
	catalogPath string
	metricsFile string
	debug       bool
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "twentyq",
		Short:         "Guess what the player is thinking of in twenty yes/no questions",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			return a.metrics.WriteTextfile(a.cfg.MetricsFile)
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (default: in-memory store from the catalog)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog YAML file (or set TWENTYQ_CATALOG)")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newTurnCmd(a),
		newPlayCmd(a),
		newSeedCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// setup loads the environment config and lets explicitly set flags win
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath = a.catalogPath
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	if a.debug {
		cfg.Debug = "1"
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.DebugEnabled())
	if err != nil {
		return err
	}
	a.metrics = metrics.New()
	return nil
}

// openRepo returns the SQLite store when a database is configured, otherwise
// an in-memory store over the catalog file.
func (a *app) openRepo(ctx context.Context) (store.Repository, func() error, error) {
	if a.cfg.DBPath != "" {
		s, err := sqlite.Open(ctx, a.cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Debug("opened sqlite store", zap.String("path", a.cfg.DBPath))
		return s, s.Close, nil
	}

	c, err := catalog.Load(a.cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("loaded catalog",
		zap.String("path", a.cfg.CatalogPath),
		zap.Int("questions", len(c.Questions)),
		zap.Int("solutions", len(c.Solutions)),
	)
	return store.NewMemoryStore(c.SolutionModels(), c.QuestionModels(), c.FeatureTable()), func() error { return nil }, nil
}

func (a *app) handler(repo store.Repository) *handlers.Handler {
	return handlers.New(repo, a.cfg.Vocabulary(), a.logger, a.metrics)
}

// turn runs one message and prints the replies. A failed turn is answered
// with a fallback message and the player starts over.
func (a *app) turn(ctx context.Context, h *handlers.Handler, w io.Writer, player, token string) error {
	intents, err := h.HandleMessage(ctx, player, token)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		if rerr := h.Reset(ctx, player); rerr != nil {
			return fmt.Errorf("reset after failed turn: %w", errors.Join(err, rerr))
		}
		intents = []reply.Intent{reply.FreeText(game.MsgStumped)}
	}
	return render.Intents(w, intents)
}
