package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pixelstep/config"
)

// traceBatch is how many trace records are buffered before a write.
const traceBatch = 256

// OutputManager handles run output with CSV logging. A nil manager is valid
// and discards everything.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	perfFile      *os.File
	traceFile     *os.File

	// Track if headers have been written
	telemetryHeaderWritten bool
	perfHeaderWritten      bool
	traceHeaderWritten     bool

	traceBuf []TraceRecord
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). trace.csv is only created
// when trace is set.
func NewOutputManager(dir string, trace bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	if trace {
		f, err = os.Create(filepath.Join(dir, "trace.csv"))
		if err != nil {
			om.telemetryFile.Close()
			om.perfFile.Close()
			return nil, fmt.Errorf("creating trace.csv: %w", err)
		}
		om.traceFile = f
		om.traceBuf = make([]TraceRecord, 0, traceBatch)
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.telemetryFile, []WindowStats{stats}, &om.telemetryHeaderWritten); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}
	if err := writeRecords(om.perfFile, records, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteTrace buffers a tick record for trace.csv. No-op unless tracing.
func (om *OutputManager) WriteTrace(r TraceRecord) error {
	if om == nil || om.traceFile == nil {
		return nil
	}
	om.traceBuf = append(om.traceBuf, r)
	if len(om.traceBuf) < traceBatch {
		return nil
	}
	return om.flushTrace()
}

// Tracing reports whether trace records are kept.
func (om *OutputManager) Tracing() bool {
	return om != nil && om.traceFile != nil
}

func (om *OutputManager) flushTrace() error {
	if len(om.traceBuf) == 0 {
		return nil
	}
	err := writeRecords(om.traceFile, om.traceBuf, &om.traceHeaderWritten)
	om.traceBuf = om.traceBuf[:0]
	if err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// writeRecords appends records, with a header on the first write only.
func writeRecords(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.traceFile != nil {
		if err := om.flushTrace(); err != nil {
			firstErr = err
		}
	}

	for _, f := range []*os.File{om.telemetryFile, om.perfFile, om.traceFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
