package folding

import "go.uber.org/zap"

// Logger wraps zap.Logger with folding-specific structured logging.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a new Logger. If logger is nil, uses a no-op logger.
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger.Named("folding")}
}

// Reconciled logs the outcome of a reconciliation pass.
func (l *Logger) Reconciled(res Result, firstErrorOffset, live int) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug("foldings reconciled",
		zap.Int("matched", res.Matched),
		zap.Int("created", res.Created),
		zap.Int("evicted", res.Evicted),
		zap.Int("preserved", res.Preserved),
		zap.Int("ignored", res.Ignored),
		zap.Int("first_error_offset", firstErrorOffset),
		zap.Int("live", live),
	)
}

// Rejected logs a candidate list that failed validation.
func (l *Logger) Rejected(err error, candidates int) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Warn("fold candidates rejected",
		zap.Error(err),
		zap.Int("candidates", candidates),
	)
}

// EditApplied logs a document edit.
func (l *Logger) EditApplied(e Edit, length int) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug("edit applied",
		zap.Int("offset", e.Offset),
		zap.Int("removed", e.Removed),
		zap.Int("inserted", e.Inserted),
		zap.Int("length", length),
	)
}
