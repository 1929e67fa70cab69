package profile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"deviceprofile/flags"
	"deviceprofile/grid"
)

func TestKey(t *testing.T) {
	in := Inputs{Metrics: testMetrics(t, "phone"), Grid: testGrid(t, "5x6")}

	a, err := Key(in)
	require.NoError(t, err)

	same := in
	same.Grid = testGrid(t, "5x6")
	same.Flags = flags.Static{}
	b, err := Key(same)
	require.NoError(t, err)
	assert.Equal(t, a, b, "equal inputs and default flags share a key")

	changed := in
	changed.Flags = flags.Static{flags.TwoLineAllAppsText: true}
	c, err := Key(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	changed = in
	changed.Preferences.HideDock = true
	d, err := Key(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestCacheGet(t *testing.T) {
	c := NewCache()
	in := Inputs{Metrics: testMetrics(t, "phone"), Grid: testGrid(t, "5x6")}

	a, err := c.Get(in)
	require.NoError(t, err)
	b, err := c.Get(Inputs{Metrics: in.Metrics, Grid: testGrid(t, "5x6")})
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Size: 1}, c.Stats())

	c.Purge()
	assert.Zero(t, c.Stats().Size)
	fresh, err := c.Get(in)
	require.NoError(t, err)
	assert.NotSame(t, a, fresh)
	assert.Equal(t, a.Workspace, fresh.Workspace)
}

func TestCacheDoesNotKeepErrors(t *testing.T) {
	c := NewCache()
	_, err := c.Get(Inputs{Metrics: testMetrics(t, "phone")})
	assert.ErrorIs(t, err, grid.ErrNilSpec)
	assert.Zero(t, c.Stats().Size)
}

func TestCacheConcurrentGet(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCache()
	metrics := testMetrics(t, "tablet")

	const n = 16
	specs := make([]*grid.Spec, n)
	for i := range specs {
		specs[i] = testGrid(t, "tablet")
	}
	got := make([]*Profile, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.Get(Inputs{Metrics: metrics, Grid: specs[i]})
			assert.NoError(t, err)
			got[i] = p
		}()
	}
	wg.Wait()

	for _, p := range got[1:] {
		assert.Same(t, got[0], p)
	}
	stats := c.Stats()
	assert.Equal(t, int64(n), stats.Hits+stats.Misses)
	assert.Equal(t, 1, stats.Size)
}
