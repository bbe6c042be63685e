package staging

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestStage_WritesFileUnderOriginalName(t *testing.T) {
	dir := t.TempDir()
	stager := NewDiskStager(dir)

	path, err := stager.Stage(fileHeader(t, "avatar.png", "image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "avatar.png"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestStage_CreatesStagingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet", "there")
	stager := NewDiskStager(dir)

	path, err := stager.Stage(fileHeader(t, "avatar.png", "x"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestStage_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	stager := NewDiskStager(dir)

	path, err := stager.Stage(fileHeader(t, "../../evil.png", "x"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "evil.png"), path, "staged path must stay inside the staging dir")
}

func TestStage_SameNameOverwrites(t *testing.T) {
	stager := NewDiskStager(t.TempDir())

	first, err := stager.Stage(fileHeader(t, "avatar.png", "first"))
	require.NoError(t, err)
	second, err := stager.Stage(fileHeader(t, "avatar.png", "second"))
	require.NoError(t, err)

	require.Equal(t, first, second)
	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
