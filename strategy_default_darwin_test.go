//go:build darwin
// +build darwin

package interpose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStrategySelection(t *testing.T) {
	lib, ok := DefaultStrategy("/usr/lib/libSystem.B.dylib").(explicitLibrary)
	require.True(t, ok, "darwin always resolves through an explicit library")
	assert.Equal(t, "/usr/lib/libSystem.B.dylib", lib.path)

	// No safe default exists without a library; the empty path is rejected
	// at resolution time, never silently probed.
	empty, ok := DefaultStrategy("").(explicitLibrary)
	require.True(t, ok)
	assert.Empty(t, empty.path)
}
