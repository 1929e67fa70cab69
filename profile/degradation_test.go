package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegradationString(t *testing.T) {
	var d Degradation
	assert.False(t, d.IsDegraded())
	assert.Equal(t, "none", d.String())
	assert.Empty(t, d.Reasons())

	d = Degradation{
		QsbShrunk:      true,
		IconsScaled:    true,
		TableFallbacks: []string{"cell", "hotseat"},
	}
	assert.True(t, d.IsDegraded())
	assert.Equal(t, []string{"icons_scaled", "qsb_shrunk", "fallback:cell", "fallback:hotseat"}, d.Reasons())
	assert.Equal(t, "icons_scaled,qsb_shrunk,fallback:cell,fallback:hotseat", d.String())
}

func TestDegradationSearchBoxMovedBelow(t *testing.T) {
	d := Degradation{QsbShrunk: true, QsbMovedBelow: true, ContentOverflow: true}
	assert.Equal(t, "qsb_shrunk,qsb_moved_below,content_overflow", d.String())
}

func TestDegradationJSON(t *testing.T) {
	b, err := json.Marshal(Degradation{FolderScaled: true})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"folder_scaled":true`)
	assert.NotContains(t, string(b), "table_fallbacks")
}
