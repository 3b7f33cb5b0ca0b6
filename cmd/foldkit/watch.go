package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"foldkit/internal/diff"
	"foldkit/internal/document"
	"foldkit/internal/folding"
	"foldkit/internal/textutil"
)

const maxViewDiffBytes = 2_000_000

type watchOptions struct {
	strategy    string
	collapseAll bool
}

func newWatchCmd(a *app) *cobra.Command {
	var opts watchOptions
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Keep fold regions in step with a file as it changes",
		Long: `Watch FILE and, after each rewrite, translate the change into edits,
shift the live regions, recompute and reconcile. Collapsed regions stay
collapsed across rewrites. Each change prints a unified diff of the
folded view. With metrics.addr set, prometheus metrics are served on
/metrics.

Examples:
  foldkit watch --collapse-all main.go
  FOLDKIT_METRICS_ADDR=:9464 foldkit watch Program.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.runWatch(ctx, cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "strategy name (default: by extension)")
	cmd.Flags().BoolVar(&opts.collapseAll, "collapse-all", false, "collapse every region found at start")
	return cmd
}

// session owns one document and its fold store. It is not safe for
// concurrent use; the watch loop is its only caller.
type session struct {
	name     string
	buf      *document.Buffer
	store    *folding.Store
	strategy folding.Strategy
	render   renderer
	log      *zap.Logger
}

// sessionUpdate describes what one reload changed.
type sessionUpdate struct {
	Edits    int
	Result   folding.Result
	ViewDiff string
}

func newSession(name, text string, strat folding.Strategy, render renderer, log *zap.Logger, opts ...folding.Option) (*session, folding.Result, error) {
	s := &session{
		name:     name,
		buf:      document.New(text),
		strategy: strat,
		render:   render,
		log:      log,
	}
	s.store = folding.NewStore(s.buf.Len(), append([]folding.Option{folding.WithLogger(log)}, opts...)...)
	res, err := folding.Update(s.store, s.strategy, s.buf)
	return s, res, err
}

// reload moves the session to text: the rewrite becomes a series of buffer
// edits that shift the live regions, then the strategy runs again.
func (s *session) reload(text string) (sessionUpdate, error) {
	old := s.buf.Text()
	if text == old {
		return sessionUpdate{}, nil
	}
	before := s.render.folded(old, s.store)

	edits := diff.Edits(old, text)
	for _, e := range edits {
		applied, err := s.buf.Replace(e.Offset, e.Removed, text[e.Offset:e.Offset+e.Inserted])
		if err != nil {
			return sessionUpdate{}, fmt.Errorf("replaying %s: %w", e, err)
		}
		if err := s.store.ApplyEdit(applied); err != nil {
			return sessionUpdate{}, err
		}
	}
	res, err := folding.Update(s.store, s.strategy, s.buf)
	if err != nil {
		return sessionUpdate{}, err
	}

	after := s.render.folded(s.buf.Text(), s.store)
	body, _ := diff.Unified("a/"+s.name, "b/"+s.name, []byte(before), []byte(after), diff.Options{MaxBytes: maxViewDiffBytes})
	return sessionUpdate{Edits: len(edits), Result: res, ViewDiff: body}, nil
}

func (a *app) runWatch(ctx context.Context, w io.Writer, path string, opts watchOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	buf, err := readDocument(abs)
	if err != nil {
		return err
	}
	name, strat, err := a.strategyFor(abs, opts.strategy)
	if err != nil {
		return err
	}

	var storeOpts []folding.Option
	if addr := a.cfg.Metrics.Addr; addr != "" {
		reg := prometheus.NewRegistry()
		storeOpts = append(storeOpts, folding.WithMetrics(folding.NewMetrics(reg)))
		stop := a.serveMetrics(addr, reg)
		defer stop()
	}

	sess, res, err := newSession(filepath.Base(abs), buf.Text(), strat, a.renderer(false), a.log, storeOpts...)
	if err != nil {
		return err
	}
	if opts.collapseAll {
		sess.store.SetAllCollapsed(true)
	}
	a.log.Info("watching",
		zap.String("file", abs),
		zap.String("strategy", name),
		zap.Int("regions", sess.store.Count()),
		zap.Int("created", res.Created),
	)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := time.NewTimer(a.cfg.Watch.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			debounce.Reset(a.cfg.Watch.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", zap.Error(err))

		case <-debounce.C:
			data, err := os.ReadFile(abs)
			if err != nil {
				// mid-rename; the next event brings the new file
				a.log.Debug("file not readable", zap.String("file", abs), zap.Error(err))
				continue
			}
			upd, err := sess.reload(string(textutil.NormalizeUTF8LF(data)))
			if err != nil {
				a.log.Error("update failed", zap.String("file", abs), zap.Error(err))
				continue
			}
			if upd.Edits == 0 {
				continue
			}
			a.log.Info("foldings updated",
				zap.Int("edits", upd.Edits),
				zap.Int("matched", upd.Result.Matched),
				zap.Int("created", upd.Result.Created),
				zap.Int("evicted", upd.Result.Evicted),
				zap.Int("preserved", upd.Result.Preserved),
				zap.Int("regions", sess.store.Count()),
			)
			if upd.ViewDiff != "" {
				fmt.Fprint(w, upd.ViewDiff)
			}
		}
	}
}

// serveMetrics exposes reg on addr until the returned stop is called.
func (a *app) serveMetrics(addr string, reg *prometheus.Registry) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
