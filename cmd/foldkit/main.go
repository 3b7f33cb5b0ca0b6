// Package main provides the foldkit CLI. It computes code foldings for files
// with pluggable strategies, keeps them alive while a watched file is
// rewritten, and renders folded views.
//
// Commands:
//   - show  : foldkit show FILE [--strategy s] [--collapse-all] [--collapse NAME] [--view]
//   - scan  : foldkit scan DIR [--ext .go,.py] [--exclude .git,node_modules]
//   - watch : foldkit watch FILE [--collapse-all]
//   - cycle : foldkit cycle [FILE] --index i [--count n] [--prev]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"foldkit/internal/config"
	"foldkit/internal/document"
	"foldkit/internal/folding"
	"foldkit/internal/logging"
	"foldkit/internal/strategy"
	"foldkit/internal/textutil"
)

var version = "dev"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "foldkit",
		Short: "Compute and track code foldings",
		Long: `foldkit derives fold regions from source files with pluggable strategies
(region markers, braces, indentation) and keeps them, including their
collapsed state, in step with edits to the file.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (FOLDKIT_* env vars override it)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(newShowCmd(a), newScanCmd(a), newWatchCmd(a), newCycleCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// strategyFor resolves the strategy for path. A non-empty override wins
// over the per-extension choice.
func (a *app) strategyFor(path, override string) (string, folding.Strategy, error) {
	name := override
	if name == "" {
		name = a.strategyName(path)
	}
	s, err := strategy.New(name, strategy.OptionsFromConfig(a.cfg))
	if err != nil {
		return "", nil, err
	}
	return name, s, nil
}

func (a *app) strategyName(path string) string {
	return strategy.ForExtension(filepath.Ext(path), a.cfg.Strategy)
}

func (a *app) renderer(styled bool) renderer {
	return renderer{placeholder: a.cfg.View.Placeholder, styled: styled}
}

// readDocument loads path as LF-normalized UTF-8 text. Offsets reported by
// foldkit refer to this normalized text.
func readDocument(path string) (*document.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return document.New(string(textutil.NormalizeUTF8LF(data))), nil
}
