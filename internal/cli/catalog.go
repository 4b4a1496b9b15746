package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronzipp/twenty-questions/internal/render"
)

type activeGameCounter interface {
	ActiveGames(ctx context.Context) (int, error)
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the feature table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, closeRepo, err := a.openRepo(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			solutions, err := repo.Solutions(ctx)
			if err != nil {
				return err
			}
			questions, err := repo.Questions(ctx)
			if err != nil {
				return err
			}
			features, err := repo.Features(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := render.FeatureTable(out, solutions, questions, features); err != nil {
				return err
			}
			if counter, ok := repo.(activeGameCounter); ok {
				n, err := counter.ActiveGames(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%d games in progress\n", n)
				return err
			}
			return nil
		},
	}
}
