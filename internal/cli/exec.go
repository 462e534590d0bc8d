package cli

import (
	"fmt"
	"strings"

	"github.com/sheikh-saqib/ledger-bot/internal/bot"
	"github.com/spf13/cobra"
)

func newExecCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <text...>",
		Short: "Run one chat command against the configured ledger as the admin",
		Example: `  ledgerbot exec +100
  ledgerbot exec 查账 2024-05-20
  ledgerbot exec 汇率 7.3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.load()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			msg := bot.Message{Text: strings.Join(args, " "), SenderID: cfg.Bot.AdminID}
			if out, ok := a.handler.Handle(cmd.Context(), msg); ok {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}
