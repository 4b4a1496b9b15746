package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaronzipp/twenty-questions/internal/catalog"
	"github.com/aaronzipp/twenty-questions/internal/store/sqlite"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the catalog file into the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DBPath == "" {
				return errors.New("seed needs --db or TWENTYQ_DB_PATH")
			}
			c, err := catalog.Load(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			s, err := sqlite.Open(cmd.Context(), a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Seed(cmd.Context(), c.SolutionModels(), c.QuestionModels(), c.FeatureTable()); err != nil {
				return err
			}
			a.logger.Info("catalog seeded",
				zap.String("db", a.cfg.DBPath),
				zap.Int("questions", len(c.Questions)),
				zap.Int("solutions", len(c.Solutions)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions and %d solutions\n", len(c.Questions), len(c.Solutions))
			return err
		},
	}
}
