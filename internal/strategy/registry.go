package strategy

import (
	"fmt"
	"sort"
	"strings"

	"foldkit/internal/config"
	"foldkit/internal/folding"
)

// Options bundles the typed options of every registered strategy.
type Options struct {
	Regions RegionOptions `json:"regions"`
	Braces  BraceOptions  `json:"braces"`
	Indent  IndentOptions `json:"indent"`
}

// OptionsFromConfig maps the loaded configuration onto strategy options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Regions: RegionOptions{DefaultCollapsed: cfg.Regions.DefaultCollapsed},
		Braces: BraceOptions{
			Pairs:        cfg.Braces.Pairs,
			MinLines:     cfg.Braces.MinLines,
			SkipLiterals: !cfg.Braces.KeepLiterals,
		},
		Indent: IndentOptions{
			TabWidth:    cfg.Indent.TabWidth,
			MinLines:    cfg.Indent.MinLines,
			Placeholder: cfg.View.Placeholder,
		},
	}
}

// Factory builds a strategy from its options.
type Factory func(opts Options) (folding.Strategy, error)

// Registry lists the built-in strategies (explicit, no reflection).
var Registry = map[string]Factory{
	"regions": func(opts Options) (folding.Strategy, error) {
		return NewRegions(opts.Regions), nil
	},
	"braces": func(opts Options) (folding.Strategy, error) {
		return NewBraces(opts.Braces)
	},
	"indent": func(opts Options) (folding.Strategy, error) {
		return NewIndent(opts.Indent), nil
	},
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	out := make([]string, 0, len(Registry))
	for name := range Registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New builds the named strategy. A name of the form "a+b" combines
// several registered strategies into one.
func New(name string, opts Options) (folding.Strategy, error) {
	parts := strings.Split(strings.TrimSpace(name), "+")
	list := make([]folding.Strategy, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		f := Registry[p]
		if f == nil {
			return nil, fmt.Errorf("unknown strategy %q (known: %s)", p, strings.Join(Names(), ", "))
		}
		s, err := f(opts)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", p, err)
		}
		list = append(list, s)
	}
	if len(list) == 1 {
		return list[0], nil
	}
	return Combine(list...), nil
}

// Combine merges the candidates of several strategies. The merged error
// offset is the earliest one any of them reports. Candidates with the same
// span keep only the first strategy's copy.
func Combine(list ...folding.Strategy) folding.Strategy {
	return folding.StrategyFunc(func(doc folding.Document) ([]folding.Candidate, int) {
		var out []folding.Candidate
		firstError := folding.NoError
		seen := map[[2]int]bool{}
		for _, s := range list {
			cands, errOff := s.Compute(doc)
			for _, c := range cands {
				key := [2]int{c.Start, c.End}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, c)
			}
			if errOff >= 0 && (firstError == folding.NoError || errOff < firstError) {
				firstError = errOff
			}
		}
		folding.SortCandidates(out)
		return out, firstError
	})
}

// ForExtension picks the strategy name for a file extension. Overrides in
// cfg.ByExt win, then the built-in table, then cfg.Default.
//
// Normalization:
//   - Case-insensitive
//   - Accepts with or without leading '.' (".go" or "go")
func ForExtension(ext string, cfg config.Strategy) string {
	e := normExt(ext)
	for k, v := range cfg.ByExt {
		if normExt(k) == e && e != "" {
			return v
		}
	}
	if name := builtinByExt(e); name != "" {
		return name
	}
	if cfg.Default != "" {
		return cfg.Default
	}
	return "braces"
}

func normExt(ext string) string {
	e := strings.TrimSpace(strings.ToLower(ext))
	if e != "" && e[0] != '.' {
		e = "." + e
	}
	return e
}

func builtinByExt(e string) string {
	switch e {
	case ".go", ".java", ".kt", ".rs", ".swift", ".c", ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".h", ".json", ".css", ".scss":
		return "braces"
	case ".cs", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs":
		// #region markers are common in this family
		return "braces+regions"
	case ".py", ".yaml", ".yml", ".nim", ".coffee":
		return "indent"
	case ".md", ".txt":
		return "regions"
	default:
		return ""
	}
}
