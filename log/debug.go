// Package log provides logging utilities including debug mode with build stage profiling.
// Enable debug mode by setting DP_DEBUG=1 environment variable.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "deviceprofile-debug.log")

// slowBuild is the build time above which a warning is logged.
const slowBuild = 5 * time.Millisecond

// InitDebug initializes debug logging if DP_DEBUG=1 is set.
// Call this after Initialize() in main.
func InitDebug() {
	if os.Getenv("DP_DEBUG") != "1" {
		// Initialize DebugLog as a no-op logger to prevent nil pointer panics
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// DebugLogPath returns the file debug output is written to.
func DebugLogPath() string {
	return debugLogFileName
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Fprintln(os.Stderr, "wrote debug logs to "+debugLogFileName)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// StageProfiler tracks how long each stage of a profile build takes.
type StageProfiler struct {
	mu          sync.RWMutex
	stages      map[string]*StageMetrics
	buildCount  int64
	totalTime   time.Duration
	lastBuildAt time.Time
	buildTimes  []time.Duration // Rolling window of build times
}

// StageMetrics tracks metrics for a single stage.
type StageMetrics struct {
	Name      string
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
	LastRunAt time.Time
}

// Global profiler instance
var profiler = &StageProfiler{
	stages:     make(map[string]*StageMetrics),
	buildTimes: make([]time.Duration, 0, 100),
}

// GetProfiler returns the global stage profiler.
func GetProfiler() *StageProfiler {
	return profiler
}

// StartStage begins timing a build stage.
// Returns a function to call when the stage completes.
func (p *StageProfiler) StartStage(stage string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.recordStage(stage, time.Since(start))
	}
}

func (p *StageProfiler) recordStage(stage string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	metrics, ok := p.stages[stage]
	if !ok {
		metrics = &StageMetrics{
			Name:    stage,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		p.stages[stage] = metrics
	}

	metrics.Count++
	metrics.TotalTime += elapsed
	metrics.LastRunAt = time.Now()

	if elapsed < metrics.MinTime {
		metrics.MinTime = elapsed
	}
	if elapsed > metrics.MaxTime {
		metrics.MaxTime = elapsed
	}
}

// RecordBuild records a complete profile build.
func (p *StageProfiler) RecordBuild(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.buildCount++
	p.totalTime += elapsed
	p.lastBuildAt = time.Now()

	if len(p.buildTimes) >= 100 {
		p.buildTimes = p.buildTimes[1:]
	}
	p.buildTimes = append(p.buildTimes, elapsed)

	if elapsed > slowBuild {
		PerformanceWarning("slow build: %v", elapsed)
	}
}

// GetStats returns a summary of build statistics.
func (p *StageProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Build Profile ===\n")
	sb.WriteString(fmt.Sprintf("Total builds: %d\n", p.buildCount))

	if p.buildCount > 0 {
		sb.WriteString(fmt.Sprintf("Avg build time: %v\n", p.totalTime/time.Duration(p.buildCount)))
	}

	if len(p.buildTimes) > 0 {
		var sum time.Duration
		lo, hi := p.buildTimes[0], p.buildTimes[0]
		for _, t := range p.buildTimes {
			sum += t
			lo = min(lo, t)
			hi = max(hi, t)
		}
		avg := sum / time.Duration(len(p.buildTimes))
		sb.WriteString(fmt.Sprintf("Recent %d builds: avg=%v min=%v max=%v\n",
			len(p.buildTimes), avg, lo, hi))
	}

	sb.WriteString("\n--- Stages ---\n")

	// Sort by total time descending
	sorted := make([]*StageMetrics, 0, len(p.stages))
	for _, m := range p.stages {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalTime != sorted[j].TotalTime {
			return sorted[i].TotalTime > sorted[j].TotalTime
		}
		return sorted[i].Name < sorted[j].Name
	})

	for _, m := range sorted {
		avg := time.Duration(0)
		if m.Count > 0 {
			avg = m.TotalTime / time.Duration(m.Count)
		}
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v min=%v max=%v\n",
			m.Name, m.Count, m.TotalTime, avg, m.MinTime, m.MaxTime))
	}

	return sb.String()
}

// LogStats logs the current build statistics.
func (p *StageProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *StageProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stages = make(map[string]*StageMetrics)
	p.buildCount = 0
	p.totalTime = 0
	p.buildTimes = make([]time.Duration, 0, 100)
}

// LayoutTrace logs layout computation events.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}

// PerformanceWarning logs performance-related warnings.
func PerformanceWarning(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[PERF WARNING] "+format, v...)
	}
}
