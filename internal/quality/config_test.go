package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromOptions(t *testing.T) {
	cfg, err := ConfigFromOptions(map[string]any{
		"high_cardinality_threshold": 50,
		"zero_threshold":             "0.25",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.HighCardinalityThreshold)
	assert.InDelta(t, 0.25, cfg.ZeroThreshold, 1e-9)
}

func TestConfigFromOptions_Defaults(t *testing.T) {
	cfg, err := ConfigFromOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromOptions_NonNumeric(t *testing.T) {
	_, err := ConfigFromOptions(map[string]any{"zero_threshold": "lots"})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = ConfigFromOptions(map[string]any{"high_cardinality_threshold": []int{1}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestConfigFromOptions_UnknownKey(t *testing.T) {
	_, err := ConfigFromOptions(map[string]any{"zero_treshold": 0.5})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestConfigFromOptions_Negative(t *testing.T) {
	_, err := ConfigFromOptions(map[string]any{"zero_threshold": -1.0})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
