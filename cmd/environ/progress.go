package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show your recycling points and badges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := resolveUserID()
			if err != nil {
				return err
			}

			p, err := apiClient().UserProgress(cmd.Context(), user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:   %s\n", p.UserID)
			fmt.Fprintf(out, "Points: %d\n", p.Points)
			if len(p.Badges) > 0 {
				fmt.Fprintf(out, "Badges: %s\n", strings.Join(p.Badges, ", "))
			} else {
				fmt.Fprintln(out, "Badges: none yet")
			}
			return nil
		},
	}
}
