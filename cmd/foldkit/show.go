package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"foldkit/internal/folding"
	"foldkit/internal/textutil"
)

type showOptions struct {
	strategy    string
	collapseAll bool
	collapse    []string
	view        bool
}

func newShowCmd(a *app) *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the fold regions of a file",
		Long: `Compute fold regions for FILE and print them as a table with 1-based
line ranges and the strategy's first error offset.

Examples:
  # Regions picked by file extension
  foldkit show main.go

  # Collapse two named regions and print the folded text
  foldkit show --strategy regions --collapse Setup --collapse Helpers --view Program.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "strategy name, e.g. braces or braces+regions (default: by extension)")
	cmd.Flags().BoolVar(&opts.collapseAll, "collapse-all", false, "collapse every region")
	cmd.Flags().StringArrayVar(&opts.collapse, "collapse", nil, "collapse regions with this name (repeatable)")
	cmd.Flags().BoolVar(&opts.view, "view", false, "also print the folded text")
	return cmd
}

func (a *app) runShow(w io.Writer, path string, opts showOptions) error {
	buf, err := readDocument(path)
	if err != nil {
		return err
	}
	name, strat, err := a.strategyFor(path, opts.strategy)
	if err != nil {
		return err
	}

	store := folding.NewStore(buf.Len(), folding.WithLogger(a.log))
	cands, firstErrorOffset := strat.Compute(buf)
	if _, err := store.Reconcile(cands, firstErrorOffset); err != nil {
		return fmt.Errorf("strategy %s: %w", name, err)
	}

	if opts.collapseAll {
		store.SetAllCollapsed(true)
	}
	for _, n := range opts.collapse {
		if collapseNamed(store, n) == 0 {
			a.log.Warn("no region with that name", zap.String("name", n), zap.String("file", path))
		}
	}

	r := a.renderer(isTerminal(w))
	fmt.Fprintln(w, r.title(fmt.Sprintf("%s (%s)", path, name)))
	if err := writeTable(w, store, textutil.NewLines(buf.Text()), firstErrorOffset); err != nil {
		return err
	}
	if opts.view {
		fmt.Fprintln(w)
		fmt.Fprint(w, r.folded(buf.Text(), store))
	}
	return nil
}

// collapseNamed collapses every region whose name matches (case-insensitive)
// and returns how many it found.
func collapseNamed(store *folding.Store, name string) int {
	n := 0
	for reg := range store.All() {
		if strings.EqualFold(reg.Name(), name) {
			reg.SetCollapsed(true)
			n++
		}
	}
	return n
}
