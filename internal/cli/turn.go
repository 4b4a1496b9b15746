package cli

import (
	"github.com/spf13/cobra"
)

func newTurnCmd(a *app) *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "turn TOKEN",
		Short: "Send one message for a player and print the replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := a.openRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			return a.turn(cmd.Context(), a.handler(repo), cmd.OutOrStdout(), player, args[0])
		},
	}
	cmd.Flags().StringVarP(&player, "player", "p", "local", "player identity")
	return cmd
}
