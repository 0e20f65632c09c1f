package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(
		filepath.Join(t.TempDir(), "user"),
		filepath.Join(t.TempDir(), "recipe"),
		zap.NewNop().Sugar(),
	)
	require.NoError(t, err)
	return store
}

// fileHeader builds a real multipart.FileHeader the way gin would hand it to us.
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	headers := req.MultipartForm.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestSave_StoresAllowedExtension(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(fileHeader(t, "cake.png", "pngdata"), KindRecipe)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "cake_"))
	require.True(t, strings.HasSuffix(name, ".png"))

	data, err := os.ReadFile(store.Path(KindRecipe, name))
	require.NoError(t, err)
	require.Equal(t, "pngdata", string(data))
}

func TestSave_DisallowedExtension(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(fileHeader(t, "malware.exe", "nope"), KindRecipe)
	require.NoError(t, err)
	require.Empty(t, name)

	entries, err := os.ReadDir(store.Dir(KindRecipe))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSave_ExtensionCaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(fileHeader(t, "photo.JPG", "jpgdata"), KindUser)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".jpg"))
}

func TestSave_SanitizesFilename(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(fileHeader(t, "../../etc pass wd!.png", "data"), KindUser)
	require.NoError(t, err)
	require.NotContains(t, name, "/")
	require.NotContains(t, name, "..")
	require.NotContains(t, name, " ")

	_, err = os.Stat(store.Path(KindUser, name))
	require.NoError(t, err)
}

func TestSave_NilFile(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(nil, KindRecipe)
	require.NoError(t, err)
	require.Empty(t, name)
}

func TestDelete_BestEffort(t *testing.T) {
	store := newTestStore(t)

	// Absent file and empty name must both be no-ops.
	store.Delete(KindRecipe, "never-existed.png")
	store.Delete(KindRecipe, "")

	name, err := store.Save(fileHeader(t, "gone.gif", "gifdata"), KindRecipe)
	require.NoError(t, err)

	store.Delete(KindRecipe, name)
	_, err = os.Stat(store.Path(KindRecipe, name))
	require.True(t, os.IsNotExist(err))
}
