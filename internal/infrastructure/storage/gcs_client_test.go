package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	name, err := ObjectName("/qr/", "image/png", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "public/qr/"))
	assert.True(t, strings.HasSuffix(name, "-20260102030405.png"))

	_, err = ObjectName("games", "application/pdf", now)
	assert.Error(t, err)

	_, err = ObjectName("", "image/png", now)
	assert.Error(t, err)
}

func TestObjectFromURL(t *testing.T) {
	name, err := objectFromURL("gv-bucket", "https://storage.googleapis.com/gv-bucket/public/qr/a.png")
	require.NoError(t, err)
	assert.Equal(t, "public/qr/a.png", name)

	_, err = objectFromURL("gv-bucket", "https://storage.googleapis.com/other/public/qr/a.png")
	assert.Error(t, err)

	_, err = objectFromURL("gv-bucket", "https://example.com/a.png")
	assert.Error(t, err)
}
