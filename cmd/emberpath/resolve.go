// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/invowk/emberpath/internal/issue"
	"github.com/invowk/emberpath/internal/resolver"
	"github.com/invowk/emberpath/pkg/fspath"
	"github.com/invowk/emberpath/pkg/types"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type (
	resolveFlags struct {
		plain  bool
		json   bool
		strict bool
		stdin  bool
	}

	// resolveRecord is the JSON form of one resolver result.
	resolveRecord struct {
		File   string `json:"file"`
		Module string `json:"module,omitempty"`
		OK     bool   `json:"ok"`
		Kind   string `json:"kind"`
		Root   string `json:"root,omitempty"`
	}
)

func newResolveCommand(app *App, flags *globalFlags) *cobra.Command {
	rf := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve [FILE...]",
		Short: "Print the module path of each file",
		Long: `Print the module path under which each file is importable at runtime.

Relative paths are resolved against the working directory. Files without a
module path print nothing; use --strict to turn that into exit status 2.`,
		Example: `  emberpath resolve packages/my-addon/addon/components/button.js
  emberpath resolve --plain app/routes/index.js
  git ls-files '*.js' | emberpath resolve --stdin --json`,
		RunE: app.runE(flags, func(cmd *cobra.Command, args []string) error {
			files := args
			if rf.stdin {
				fromStdin, err := readFileList(cmd.InOrStdin())
				if err != nil {
					return err
				}
				files = append(files, fromStdin...)
			}
			if len(files) == 0 {
				return fmt.Errorf("no files given: pass FILE arguments or use --stdin")
			}
			return runResolve(cmd, app, flags, rf, files)
		}),
	}

	cmd.Flags().BoolVar(&rf.plain, "plain", false, "print only module paths, one per resolved file")
	cmd.Flags().BoolVar(&rf.json, "json", false, "print results as a JSON array")
	cmd.Flags().BoolVar(&rf.strict, "strict", false, "exit with status 2 when a file has no module path")
	cmd.Flags().BoolVar(&rf.stdin, "stdin", false, "also read newline-separated files from standard input")
	cmd.MarkFlagsMutuallyExclusive("plain", "json")

	return cmd
}

func runResolve(cmd *cobra.Command, app *App, flags *globalFlags, rf *resolveFlags, args []string) error {
	sess, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	res, err := sess.newResolver()
	if err != nil {
		return err
	}

	files := make([]types.FilesystemPath, 0, len(args))
	for _, arg := range args {
		abs, err := fspath.Abs(types.FilesystemPath(arg))
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", arg, err)
		}
		files = append(files, abs)
	}

	results := res.ResolveAll(files)

	var unresolved []string
	for _, r := range results {
		if !r.OK {
			sess.logger.Info("no module path", "file", r.File)
			unresolved = append(unresolved, r.File.String())
		}
	}

	switch {
	case rf.json:
		if err := writeResultsJSON(app.stdout, results); err != nil {
			return err
		}
	case rf.plain:
		for _, r := range results {
			if r.OK {
				fmt.Fprintln(app.stdout, r.ModulePath)
			}
		}
	default:
		for _, r := range results {
			if r.OK {
				fmt.Fprintf(app.stdout, "%s -> %s\n", KeyStyle.Render(r.File.String()), moduleStyle(r.Kind).Render(r.ModulePath.String()))
			}
		}
	}

	if rf.strict && len(unresolved) > 0 {
		return &ExitError{
			Code: types.ExitUnresolved,
			Err: issue.NewErrorContext().
				WithOperation("resolve module path").
				WithResource(strings.Join(unresolved, ", ")).
				WithIssue(issue.ModulePathUnresolvedId).
				WithSuggestion("Run 'emberpath roots' to list the package roots that were found").
				Wrap(fmt.Errorf("%d of %d file(s) have no module path", len(unresolved), len(results))).
				BuildError(),
		}
	}
	return nil
}

func moduleStyle(kind resolver.Kind) lipgloss.Style {
	if kind == resolver.KindFallback {
		return WarningStyle
	}
	return SuccessStyle
}

func writeResultsJSON(w io.Writer, results []resolver.Result) error {
	records := make([]resolveRecord, len(results))
	for i, r := range results {
		records[i] = resolveRecord{
			File:   r.File.String(),
			Module: r.ModulePath.String(),
			OK:     r.OK,
			Kind:   r.Kind.String(),
			Root:   r.Root.String(),
		}
	}
	data, err := sonic.ConfigStd.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// readFileList reads one path per line, skipping blank lines.
func readFileList(r io.Reader) ([]string, error) {
	var files []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file list: %w", err)
	}
	return files, nil
}
