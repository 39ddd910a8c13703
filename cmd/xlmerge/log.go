package main

import "log/slog"

// logListener reports merge progress through slog.
type logListener struct {
	log *slog.Logger
}

func (l *logListener) Cleared(removed int) {
	l.log.Info("summary data cleared, header kept", "rows_removed", removed)
}

func (l *logListener) SourceAppended(name string, rows, hidden int) {
	l.log.Info("rows added", "file", name, "rows", rows, "hidden", hidden)
}

func (l *logListener) SourceSkipped(name, reason string) {
	l.log.Warn("file skipped", "file", name, "reason", reason)
}
