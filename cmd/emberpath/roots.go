// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/emberpath/internal/issue"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newRootsCommand(app *App, flags *globalFlags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List the addon and app roots of the workspace",
		Long: `List every package root found in the workspace with its classification.

Packages whose manifest has the addon keyword are addons; packages that depend
on the app dependency are apps. Other packages are not listed.`,
		Args: cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, args []string) error {
			sess, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return err
			}

			roots := sess.registry.Roots()
			if len(roots) == 0 {
				fmt.Fprintln(app.stderr, WarningStyle.Render("No addon or app roots found under ")+sess.root.String())
				app.renderCatalogEntry(issue.Get(issue.NoPackageRootsId))
				return nil
			}

			if plain {
				for _, r := range roots {
					fmt.Fprintf(app.stdout, "%s\t%s\t%s\n", r.Classification, r.Name, r.Dir)
				}
				return nil
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(SubtitleStyle).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return tableHeaderStyle
					}
					return tableCellStyle
				}).
				Headers("KIND", "NAME", "DIRECTORY")
			for _, r := range roots {
				t.Row(r.Classification.String(), r.Name.String(), r.Dir.String())
			}

			fmt.Fprintln(app.stdout, t.Render())
			fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("%d root(s) under %s", len(roots), sess.root)))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tab-separated kind, name and directory")

	return cmd
}
