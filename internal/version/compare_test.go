package version

import (
	"testing"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		library       string
		config        string
		expectError   bool
		errorContains string
	}{
		{name: "exact match", library: "1.0.0", config: "1.0.0"},
		{name: "config patch higher", library: "1.0.0", config: "1.0.7"},
		{name: "library patch higher", library: "1.0.4", config: "1.0.1"},
		{name: "v prefix", library: "v1.0.0", config: "v1.0.2"},
		{name: "minor differs", library: "1.1.0", config: "1.0.0", expectError: true, errorContains: "not compatible"},
		{name: "major differs", library: "2.0.0", config: "1.0.0", expectError: true, errorContains: "not compatible"},
		{name: "development library", library: "main", config: "9.9.9"},
		{name: "development config", library: "1.0.0", config: "main"},
		{name: "invalid config", library: "1.0.0", config: "one", expectError: true, errorContains: "invalid config version"},
		{name: "invalid library", library: "latest", config: "1.0.0", expectError: true, errorContains: "invalid library version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.library, tt.config)
			if !tt.expectError {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
