package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"foldkit/internal/folding"
	"foldkit/internal/navigator"
	"foldkit/internal/textutil"
)

type cycleOptions struct {
	index int
	count int
	steps int
	prev  bool
}

func newCycleCmd(a *app) *cobra.Command {
	var opts cycleOptions
	cmd := &cobra.Command{
		Use:   "cycle [FILE]",
		Short: "Step a wrap-around selection forward or backward",
		Long: `Advance a selection index with wrap-around, the way overload or region
pickers cycle. Without FILE the list is --count items long; with FILE it
is the file's fold regions and the selected region is printed.

Examples:
  foldkit cycle --index 2 --count 3          # prints 0
  foldkit cycle --index 0 --count 3 --prev   # prints 2
  foldkit cycle --index 1 main.go`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.steps < 0 {
				return errors.New("--steps must not be negative")
			}
			if len(args) == 1 {
				return a.runCycleFile(cmd.OutOrStdout(), args[0], opts)
			}
			return runCycle(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.index, "index", 0, "current selection")
	cmd.Flags().IntVar(&opts.count, "count", 0, "number of items (ignored with FILE)")
	cmd.Flags().IntVar(&opts.steps, "steps", 1, "how many items to move")
	cmd.Flags().BoolVar(&opts.prev, "prev", false, "move backward")
	return cmd
}

func (o cycleOptions) delta() int {
	if o.prev {
		return -o.steps
	}
	return o.steps
}

func runCycle(w io.Writer, opts cycleOptions) error {
	next := navigator.Advance(opts.index, opts.delta(), opts.count)
	controls := "hidden"
	if navigator.ShowControls(opts.count) {
		controls = "shown"
	}
	fmt.Fprintf(w, "%d (of %d, controls %s)\n", next, opts.count, controls)
	return nil
}

func (a *app) runCycleFile(w io.Writer, path string, opts cycleOptions) error {
	buf, err := readDocument(path)
	if err != nil {
		return err
	}
	_, strat, err := a.strategyFor(path, "")
	if err != nil {
		return err
	}
	store := folding.NewStore(buf.Len(), folding.WithLogger(a.log))
	if _, err := folding.Update(store, strat, buf); err != nil {
		return err
	}

	items := navigator.NewSlice(store.Regions()...)
	items.SetSelectedIndex(navigator.Advance(opts.index, 0, items.Count()))
	nav := navigator.New(items)
	for i := 0; i < opts.steps; i++ {
		if opts.prev {
			nav.Previous()
		} else {
			nav.Next()
		}
	}

	reg, ok := items.Selected()
	if !ok {
		fmt.Fprintln(w, "no regions")
		return nil
	}
	first, last := textutil.NewLines(buf.Text()).Span(reg.Start(), reg.End())
	fmt.Fprintf(w, "%d/%d lines %d-%d %s\n", items.SelectedIndex()+1, items.Count(), first, last, reg.Name())
	return nil
}
