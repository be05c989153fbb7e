// Package status provides Status
package status

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/tkw1536/pkglib/perf"
)

// Status logs the progress of a command through a sequence of stages.
// Each stage records performance metrics at its start and end.
//
// Status is safe to access concurrently, however the caller is responsible for only logging to one stage at a time.
//
// A nil Status is valid, and discards any information written to it.
type Status struct {
	m sync.RWMutex // m protects changes to current and all

	logger *slog.Logger

	current StageStats   // current holds information about the current stage
	all     []StageStats // all hold information about the old stages
}

// NewStatus creates a new status which writes messages of at least the given level to w.
// If w is nil, returns a nil Status.
func NewStatus(w io.Writer, level slog.Level) *Status {
	if w == nil {
		return nil
	}
	return &Status{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// Logger returns the logger backing this status.
// If status is nil, returns nil.
func (status *Status) Logger() *slog.Logger {
	if status == nil {
		return nil
	}
	return status.logger
}

// Log logs an informational message with the provided key, value field pairs.
// When status or the associated logger are nil, no logging occurs.
func (status *Status) Log(message string, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}
	status.logger.Info(message, fields...)
}

// LogDebug logs a debug message with the provided key, value field pairs.
// When status or the associated logger are nil, no logging occurs.
func (status *Status) LogDebug(message string, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}
	status.logger.Debug(message, fields...)
}

// LogError logs an error message containing the provided error and the provided key, value field pairs.
func (status *Status) LogError(message string, err error, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}

	status.logger.Error("FAILED "+message, append([]any{"err", err}, fields...)...)
}

// LogFatal is like LogError followed by os.Exit(1).
// When status or the associated logger are nil, os.Exit(1) is called immediately.
func (status *Status) LogFatal(message string, err error) {
	status.LogError(message, err)
	os.Exit(1)
}

// Diff returns a performance diff starting at the first, and ending at the last stage.
// If status is nil, a nil diff is returned.
func (status *Status) Diff() perf.Diff {
	if status == nil {
		var zero perf.Diff
		return zero
	}

	status.m.RLock()
	defer status.m.RUnlock()

	min := status.current.Start
	max := status.current.End

	for _, ss := range status.all {
		if min.Time.IsZero() || ss.Start.Time.Before(min.Time) {
			min = ss.Start
		}
		if max.Time.IsZero() || ss.End.Time.After(max.Time) {
			max = ss.End
		}
	}

	return max.Sub(min)
}

// All returns the stats of all finished stages.
func (status *Status) All() []StageStats {
	if status == nil {
		return nil
	}

	status.m.RLock()
	defer status.m.RUnlock()

	return append([]StageStats(nil), status.all...)
}

// Start starts a new stage, ending the current stage if any.
//
// If st is nil, this function has no effect.
func (st *Status) Start(stage Stage) {
	if st == nil {
		return
	}

	st.m.Lock()
	defer st.m.Unlock()

	st.end()

	st.current.Stage = stage
	st.current.Start = perf.Now()

	if st.logger != nil {
		st.logger.Info("start", "stage", stage)
	}
}

// Add adds delta to the number of objects processed in the current stage.
//
// If st is nil, this function has no effect.
func (st *Status) Add(delta int) {
	if st == nil {
		return
	}

	st.m.Lock()
	defer st.m.Unlock()

	st.current.Objects += delta
}

// End ends the current stage if any.
//
// If st is nil, this function has no effect.
func (st *Status) End() (prev StageStats) {
	if st == nil {
		return
	}

	st.m.Lock()
	defer st.m.Unlock()

	return st.end()
}

// end implements End.
// st.m must be held for writing.
func (st *Status) end() (prev StageStats) {
	if st.current.Stage != StageInitial {
		st.current.End = perf.Now()
		st.all = append(st.all, st.current)
		prev = st.current
	}

	st.current = *new(StageStats)

	if prev.Stage == StageInitial {
		return
	}

	if st.logger != nil {
		if prev.Objects != 0 {
			st.logger.Info("end", "stage", prev.Stage, "took", prev.Diff(), "objects", prev.Objects)
		} else {
			st.logger.Info("end", "stage", prev.Stage, "took", prev.Diff())
		}
	}
	return
}

// DoStage is a convenience wrapper to start a new stage, call f, and log the resulting error if any.
//
// If st is nil, immediately invokes f.
func (st *Status) DoStage(stage Stage, f func() error) error {
	if st == nil {
		return f()
	}

	st.Start(stage)

	err := f()

	st.m.Lock()
	defer st.m.Unlock()

	st.end()
	if err != nil {
		st.LogError("failed stage", err, "stage", stage)
		return err
	}
	return nil
}

// StageStats holds the stats for a specific stage
type StageStats struct {
	Stage Stage

	Start perf.Snapshot // At the start of the stage
	End   perf.Snapshot // At the end of the stage

	Objects int // number of objects processed
}

// Diff returns a diff of the given stage
func (ss StageStats) Diff() perf.Diff {
	return ss.End.Sub(ss.Start)
}

// Stage represents a stage of a command
type Stage string

const (
	StageInitial    Stage = ""
	StageOpenStore  Stage = "store/open"
	StageScanStore  Stage = "store/scan"
	StageExportSQL  Stage = "export/sql"
	StageDemoString Stage = "demo/string"
	StageDemoInt    Stage = "demo/int"
	StageDemoMap    Stage = "demo/map"
)
