package httpx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "js", "app.js"), []byte("console.log(1)"), 0o644))

	return root
}

func TestServeFileSuccess(t *testing.T) {
	root := staticRoot(t)

	var out bytes.Buffer
	require.NoError(t, ServeFile(&out, "/js/app.js", root))

	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nconsole.log(1)", out.String())
}

func TestServeFileDirectoryIndex(t *testing.T) {
	root := staticRoot(t)

	var out bytes.Buffer
	require.NoError(t, ServeFile(&out, "/", root))

	assert.True(t, strings.HasSuffix(out.String(), "<h1>home</h1>"))
	assert.True(t, strings.HasPrefix(out.String(), "HTTP/1.1 200 OK\r\n\r\n"))
}

func TestServeFileMissing(t *testing.T) {
	root := staticRoot(t)

	var out bytes.Buffer
	require.NoError(t, ServeFile(&out, "/nope.html", root))

	assert.True(t, strings.HasPrefix(out.String(), "HTTP/1.1 404 "))
}

func TestServeFileRefusesEscape(t *testing.T) {
	root := staticRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("no"), 0o644))

	for _, target := range []string{"/../secret.txt", "/js/../../secret.txt"} {
		var out bytes.Buffer
		require.NoError(t, ServeFile(&out, target, root))
		assert.True(t, strings.HasPrefix(out.String(), "HTTP/1.1 404 "), "target %q", target)
	}
}

func TestServeFileEmptyRootServesNothing(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ServeFile(&out, "/index.html", ""))

	assert.True(t, strings.HasPrefix(out.String(), "HTTP/1.1 404 "))
}

func TestServeFileStripsQuery(t *testing.T) {
	root := staticRoot(t)

	var out bytes.Buffer
	require.NoError(t, ServeFile(&out, "/js/app.js?v=2", root))

	assert.True(t, strings.HasSuffix(out.String(), "console.log(1)"))
}
