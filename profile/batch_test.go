package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"deviceprofile/device"
	"deviceprofile/grid"
)

func matrix(t *testing.T) []Inputs {
	t.Helper()
	var out []Inputs
	for _, preset := range device.Presets() {
		for _, s := range grid.Builtin() {
			out = append(out, Inputs{Metrics: preset.Metrics, Grid: s})
		}
	}
	return out
}

func TestBuildAllKeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := matrix(t)
	for _, limit := range []int{0, 1, 3} {
		got, err := BuildAll(context.Background(), inputs, limit)
		require.NoError(t, err)
		require.Len(t, got, len(inputs))
		for i, p := range got {
			assert.Equal(t, inputs[i].Grid.Name, p.GridName)
			assert.Equal(t, inputs[i].Metrics, p.Metrics)
		}
	}
}

func TestBuildAllMatchesNew(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := matrix(t)
	got, err := BuildAll(context.Background(), inputs, 4)
	require.NoError(t, err)
	for i, in := range inputs {
		want, err := New(in)
		require.NoError(t, err)
		assert.Equal(t, want.Workspace, got[i].Workspace)
		assert.Equal(t, want.Hotseat, got[i].Hotseat)
	}
}

func TestBuildAllError(t *testing.T) {
	defer goleak.VerifyNone(t)

	inputs := []Inputs{
		{Metrics: testMetrics(t, "phone"), Grid: testGrid(t, "5x6")},
		{Metrics: testMetrics(t, "phone")},
	}
	_, err := BuildAll(context.Background(), inputs, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, grid.ErrNilSpec)
	assert.Contains(t, err.Error(), "input 1:")
}

func TestBuildAllCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildAll(ctx, matrix(t), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheBuildAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCache()
	inputs := matrix(t)
	first, err := c.BuildAll(context.Background(), inputs, 4)
	require.NoError(t, err)
	second, err := c.BuildAll(context.Background(), inputs, 4)
	require.NoError(t, err)

	for i := range first {
		assert.Same(t, first[i], second[i])
	}
	assert.Equal(t, len(inputs), c.Stats().Size)
}

func TestBuildAllEmpty(t *testing.T) {
	got, err := BuildAll(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
