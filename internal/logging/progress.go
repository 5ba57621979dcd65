package logging

import "go.uber.org/zap"

// ProgressReporter logs conversion milestones at info level.
type ProgressReporter struct {
	log *zap.Logger
}

// NewProgressReporter returns a reporter writing to l.
func NewProgressReporter(l *zap.Logger) *ProgressReporter {
	return &ProgressReporter{log: l}
}

// Report logs one milestone.
func (p *ProgressReporter) Report(percent int, message string) {
	p.log.Info(message, zap.Int("progress", percent))
}
