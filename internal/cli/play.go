package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aaronzipp/twenty-questions/internal/render"
)

const quitToken = "quit"

func newPlayCmd(a *app) *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively, one message per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, closeRepo, err := a.openRepo(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			h := a.handler(repo)
			out := cmd.OutOrStdout()
			vocab := a.cfg.Vocabulary()
			if _, err := out.Write([]byte("Type " + render.Choices([]string{vocab.StartLabel(), quitToken}) + "\n")); err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if strings.EqualFold(line, quitToken) {
					return nil
				}
				if err := a.turn(ctx, h, out, player, line); err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVarP(&player, "player", "p", "local", "player identity")
	return cmd
}
