// Package ui renders terminal feedback for pipeline runs, a progress bar
// over candidate evaluation in particular.
package ui

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// EvaluationBar shows per-candidate progress during the evaluation phase
// with completion percentage, throughput and ETA
type EvaluationBar struct {
	bar   *progressbar.ProgressBar
	total int64
}

// NewEvaluationBar creates a progress bar for a known number of candidates.
// Throttled to 100ms so concurrent workers don't thrash the terminal.
func NewEvaluationBar(total int64, description string) *EvaluationBar {
	return newEvaluationBar(total, description, os.Stderr)
}

// NewEvaluationBarWithWriter creates a bar writing to a specific writer,
// for tests
func NewEvaluationBarWithWriter(total int64, description string, writer io.Writer) *EvaluationBar {
	return newEvaluationBar(total, description, writer)
}

func newEvaluationBar(total int64, description string, writer io.Writer) *EvaluationBar {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowIts(), // Candidates per second
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(false),
	)

	return &EvaluationBar{bar: bar, total: total}
}

// Add increments the bar. Safe to call from multiple evaluation workers;
// the underlying bar serializes its own updates.
func (b *EvaluationBar) Add(amount int64) error {
	return b.bar.Add64(amount)
}

// Finish completes the bar
func (b *EvaluationBar) Finish() error {
	return b.bar.Finish()
}
