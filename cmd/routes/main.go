// Command routes inspects the docs site route table: it validates it,
// converts it between formats and shows which route answers a path.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/arufa-research/junokit-user-docs/internal/manifest"
	"github.com/arufa-research/junokit-user-docs/internal/route"

	"github.com/brody192/logger"
	"github.com/spf13/cobra"
)

var manifestPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Stderr.Error("command failed", logger.ErrAttr(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routes",
		Short:         "Inspect the docs site route table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "route table file (.js, .json, .yaml); empty uses the embedded table")

	root.AddCommand(
		newValidateCmd(),
		newConvertCmd(),
		newResolveCmd(),
		newSidebarsCmd(),
	)

	return root
}

func loadTable() (route.Table, error) {
	return manifest.Source{Path: manifestPath}.Load()
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the route table invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d routes, %d pages, %d sidebars\n",
				manifest.Source{Path: manifestPath}, table.Len(), len(table.Leaves()), len(table.Sidebars()))

			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the route table in another format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			return encode(cmd.OutOrStdout(), table, to)
		},
	}

	cmd.Flags().StringVar(&to, "to", "json", "output format: json, yaml or js")

	return cmd
}

func encode(w io.Writer, table route.Table, format string) error {
	switch format {
	case "json":
		return route.EncodeJSON(w, table)
	case "yaml", "yml":
		return route.EncodeYAML(w, table)
	case "js":
		return route.RenderModule(w, table)
	}

	return fmt.Errorf("unknown output format %q", format)
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Show which route answers each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, p := range args {
				m, ok := table.Resolve(p)
				if !ok {
					fmt.Fprintf(out, "%s\tno match\n", p)
					continue
				}

				line := fmt.Sprintf("%s\t%s", p, m.Record.Path)

				if m.Record.Component.Hash != "" {
					line += "\tchunk=" + m.Record.Component.Hash
				}

				if m.Record.Sidebar != "" {
					line += "\tsidebar=" + m.Record.Sidebar
				}

				if m.Record.IsCatchAll() {
					line += "\t(fallback)"
				}

				fmt.Fprintln(out, line)
			}

			return nil
		},
	}
}

func newSidebarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sidebars",
		Short: "List sidebars and the pages in each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			sidebars := table.Sidebars()

			names := make([]string, 0, len(sidebars))
			for name := range sidebars {
				names = append(names, name)
			}

			sort.Strings(names)

			out := cmd.OutOrStdout()

			for _, name := range names {
				fmt.Fprintln(out, name)

				for _, r := range sidebars[name] {
					fmt.Fprintf(out, "  %s\n", r.Path)
				}
			}

			return nil
		},
	}
}
