package libdl

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCachedReusesHandle(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewLogfmtLogger(&buf))
	t.Cleanup(func() { SetLogger(log.NewNopLogger()) })

	// Seed the cache so the hit path runs without touching the dynamic
	// linker.
	handles.Add("libseeded.so.1", 0x1234)

	h, err := OpenCached("libseeded.so.1")
	require.NoError(t, err)
	assert.Equal(t, uintptr(0x1234), h)
	assert.Contains(t, buf.String(), "handle cache hit")
	assert.Contains(t, buf.String(), "libseeded.so.1")
}
