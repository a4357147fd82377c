// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/invowk/emberpath/internal/issue"

	"github.com/spf13/cobra"
)

func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [ID]",
		Short: "Describe known problems and how to fix them",
		Long: `Render the help text of a known problem, or of every problem when no ID
is given. Errors reported by other commands link to one of these entries.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := issue.Values()
			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid issue id %q: %w", args[0], err)
				}
				entry := issue.Get(issue.Id(id))
				if entry == nil {
					return fmt.Errorf("unknown issue id %d", id)
				}
				entries = []*issue.Issue{entry}
			}

			for _, entry := range entries {
				rendered, err := entry.Render(app.issueStyle)
				if err != nil {
					return fmt.Errorf("failed to render issue %d: %w", entry.Id(), err)
				}
				fmt.Fprintf(app.stdout, "%s\n%s", TitleStyle.Render(fmt.Sprintf("Issue %d", entry.Id())), rendered)
			}
			return nil
		},
	}
}
