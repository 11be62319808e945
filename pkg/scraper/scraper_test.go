package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gamebooks</html>"))
	}))
	defer srv.Close()

	content, err := FetchURL(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>gamebooks</html>", content)
}

func TestFetchURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchURL(srv.URL)
	assert.Error(t, err)
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "game.pdf")
	require.NoError(t, DownloadFile(srv.URL, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(content))
}

func TestDownloadFileTruncatedLeavesNoFile(t *testing.T) {
	// Announce more bytes than are sent so the client hits an unexpected EOF
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "players.csv")
	require.Error(t, DownloadFile(srv.URL, path))

	// Neither a truncated target nor a stray partial may remain; a later run
	// must not mistake either for a valid cache
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDownloadFileNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := DownloadFile(srv.URL, filepath.Join(t.TempDir(), "game.pdf"))
	assert.Error(t, err)
}

func TestExtractGamebookLinks(t *testing.T) {
	html := `<html><body>
		<a href="week7-hou-sea.pdf">HOU at SEA</a>
		<a href="https://cdn.example.com/books/week7-dal-phi.PDF">DAL at PHI</a>
		<a href="standings.html">Standings</a>
		<a>no href</a>
	</body></html>`

	links := ExtractGamebookLinks(html, "https://example.com/gamebooks/index.html")
	assert.Equal(t, []string{
		"https://example.com/gamebooks/week7-hou-sea.pdf",
		"https://cdn.example.com/books/week7-dal-phi.PDF",
	}, links)
}

func TestResolveRelativeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/gamebooks/week7.pdf",
		ResolveRelativeURL("https://example.com/gamebooks/index.html", "week7.pdf"))
	assert.Equal(t, "https://example.com/gamebooks/week7.pdf",
		ResolveRelativeURL("https://example.com/gamebooks/", "week7.pdf"))
	assert.Equal(t, "https://cdn.example.com/week7.pdf",
		ResolveRelativeURL("https://example.com/gamebooks/", "https://cdn.example.com/week7.pdf"))
	assert.Equal(t, "https://example.com/week7.pdf",
		ResolveRelativeURL("example.com", "week7.pdf"))
}
