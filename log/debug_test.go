package log

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugDisabledByDefault(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	os.Unsetenv("DP_DEBUG")
	InitDebug()

	assert.False(t, DebugEnabled, "Debug should be disabled by default")
	assert.NotNil(t, DebugLog)
}

func TestDebugEnabledWithEnvVar(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	t.Setenv("DP_DEBUG", "1")

	InitDebug()
	defer func() {
		CloseDebug()
		DebugEnabled = false
	}()

	assert.True(t, DebugEnabled, "Debug should be enabled with DP_DEBUG=1")
	assert.NotNil(t, DebugLog)
}

func TestDebugFunction(t *testing.T) {
	var buf bytes.Buffer
	DebugEnabled = false
	DebugLog = log.New(&buf, "", 0)
	Debug("hidden %s", "arg")
	assert.Empty(t, buf.String())

	DebugEnabled = true
	Debug("shown %s", "arg")
	assert.Equal(t, "shown arg\n", buf.String())

	// Enabled without a logger must not panic.
	DebugLog = nil
	Debug("test message %s", "arg")
	DebugEnabled = false
}

func TestStageProfiler(t *testing.T) {
	profiler.Reset()

	t.Run("StartStage returns noop when disabled", func(t *testing.T) {
		DebugEnabled = false
		done := profiler.StartStage("test")
		done()

		assert.Empty(t, profiler.stages)
	})

	t.Run("StartStage records when enabled", func(t *testing.T) {
		DebugEnabled = true
		profiler.Reset()

		done := profiler.StartStage("fit")
		time.Sleep(1 * time.Millisecond)
		done()

		require.Len(t, profiler.stages, 1)
		metrics := profiler.stages["fit"]
		require.NotNil(t, metrics)
		assert.Equal(t, int64(1), metrics.Count)
		assert.GreaterOrEqual(t, metrics.TotalTime, time.Millisecond)
	})

	t.Run("multiple stages accumulate", func(t *testing.T) {
		DebugEnabled = true
		profiler.Reset()

		for i := 0; i < 5; i++ {
			done := profiler.StartStage("dock")
			done()
		}

		require.NotNil(t, profiler.stages["dock"])
		assert.Equal(t, int64(5), profiler.stages["dock"].Count)
	})
	DebugEnabled = false
}

func TestRecordBuild(t *testing.T) {
	profiler.Reset()
	DebugEnabled = true
	defer func() { DebugEnabled = false }()

	profiler.RecordBuild(10 * time.Millisecond)
	profiler.RecordBuild(20 * time.Millisecond)

	assert.Equal(t, int64(2), profiler.buildCount)
	assert.Equal(t, 30*time.Millisecond, profiler.totalTime)
}

func TestGetStats(t *testing.T) {
	profiler.Reset()
	DebugEnabled = true
	defer func() { DebugEnabled = false }()

	profiler.RecordBuild(10 * time.Millisecond)
	done := profiler.StartStage("padding")
	done()

	stats := profiler.GetStats()
	assert.Contains(t, stats, "Build Profile")
	assert.Contains(t, stats, "padding")

	DebugEnabled = false
	assert.Empty(t, profiler.GetStats())
}

func TestTraceHelpers(t *testing.T) {
	// Trace helpers must not panic in any state.
	DebugEnabled = false
	DebugLog = nil
	LayoutTrace("test %s", "arg")
	PerformanceWarning("test %s", "arg")

	DebugEnabled = true
	LayoutTrace("test %s", "arg")
	PerformanceWarning("test %s", "arg")

	var buf bytes.Buffer
	DebugLog = log.New(&buf, "", 0)
	LayoutTrace("cell %d", 42)
	assert.True(t, strings.HasPrefix(buf.String(), "[LAYOUT] cell 42"))
	DebugEnabled = false
}

func TestRollingWindow(t *testing.T) {
	profiler.Reset()
	DebugEnabled = true
	defer func() { DebugEnabled = false }()

	for i := 0; i < 150; i++ {
		profiler.RecordBuild(time.Millisecond)
	}

	assert.Len(t, profiler.buildTimes, 100)
}

func TestLoggersBackedByZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, use(zap.New(core)))
	defer func() {
		require.NoError(t, use(zap.NewNop()))
	}()

	InfoLog.Printf("built %s", "5x6")
	WarningLog.Print("fallback")
	ErrorLog.Print("failed")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "built 5x6", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}
