package images

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDataURL_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "/static/uploads")

	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
	url, err := store.SaveDataURL("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/static/uploads/")
	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), raw)

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDataURL_RejectsBadInput(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads")

	_, err := store.SaveDataURL("not a data url")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = store.SaveDataURL("data:image/gif;base64,aGk=")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = store.SaveDataURL("data:image/png;base64,%%%")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestRemove_IgnoresForeignURLs(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads")

	assert.NoError(t, store.Remove("https://elsewhere.example/x.png"))
	assert.NoError(t, store.Remove("/static/uploads/never-existed.png"))
}
