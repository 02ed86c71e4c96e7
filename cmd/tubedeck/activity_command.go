package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newActivityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show the caller's event log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.resolveSession(); err != nil {
				return err
			}
			if !env.session.Authenticated() {
				return errors.New("activity requires a signed-in session: run tubedeck login first")
			}
			if err := env.openStore(); err != nil {
				return err
			}

			entries, err := env.recorder.ListForUser(cmd.Context(), env.session.ID())
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(writer, "No activity recorded.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					formatUnixSeconds(entry.CreatedAtSeconds),
					entry.EventType,
					truncate(entry.PayloadJSON, 70),
				})
			}
			fmt.Fprintln(writer, renderTable([]string{"When", "Event", "Payload"}, rows, nil))
			return nil
		},
	}
}
