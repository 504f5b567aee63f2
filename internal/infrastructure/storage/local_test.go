package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

func TestLocalStorage_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(ctx, "Standup.MP3", strings.NewReader("audio bytes"), 11, "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, ".mp3", filepath.Ext(ref))

	rc, err := s.Open(ctx, ref)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "audio bytes", string(data))

	require.NoError(t, s.Remove(ctx, ref))
	_, err = os.Stat(ref)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.Remove(ctx, ref), "second remove fails")
}

func TestLocalStorage_RejectsForeignPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(ctx, "/etc/passwd")
	assert.Error(t, err)

	assert.Error(t, s.Remove(ctx, "../outside.mp3"))
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(&config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
