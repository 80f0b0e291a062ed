package actions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFolderAliases(t *testing.T) {
	l := NewLocal()
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Desktop"), l.resolveFolder("桌面"))
	assert.Equal(t, filepath.Join(home, "Documents"), l.resolveFolder("我的文档"))

	// Unknown names pass through untouched.
	assert.Equal(t, "/tmp/somewhere", l.resolveFolder("/tmp/somewhere"))
}

func TestOpenFolderMissingPath(t *testing.T) {
	l := NewLocal()
	_, err := l.OpenFolder(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestListFiles(t *testing.T) {
	l := NewLocal()
	dir := t.TempDir()

	out, err := l.ListFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "是空的")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	out, err = l.ListFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "a.txt"))
}

func TestNetworkBackedOperationsUnavailable(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	_, err := l.GetWeather(ctx, "北京", "明天")
	assert.Error(t, err)
	_, err = l.GetNews(ctx)
	assert.Error(t, err)
	_, err = l.SearchInternet(ctx, "天气")
	assert.Error(t, err)
	_, err = l.SearchMap(ctx, "北京")
	assert.Error(t, err)
	_, err = l.PlayMusic(ctx, "晴天")
	assert.Error(t, err)
	_, err = l.Translate(ctx, "你好", "en")
	assert.Error(t, err)
}
