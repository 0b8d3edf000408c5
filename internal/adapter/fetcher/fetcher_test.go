package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/remotework/jobnexus/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRotator_ProxiesInTurn(t *testing.T) {
	r := NewRotator([]string{"http://p1:8000", "http://p2:8000"}, nil)

	assert.Equal(t, "http://p1:8000", r.Proxy())
	assert.Equal(t, "http://p2:8000", r.Proxy())
	assert.Equal(t, "http://p1:8000", r.Proxy())
	assert.Contains(t, defaultUserAgents, r.UserAgent())

	u, err := r.ProxyFunc(nil)
	require.NoError(t, err)
	assert.Equal(t, "p2:8000", u.Host)
}

func TestRotator_NoProxies(t *testing.T) {
	r := NewRotator(nil, []string{"ua"})

	assert.Equal(t, "", r.Proxy())
	assert.Equal(t, "ua", r.UserAgent())
	u, err := r.ProxyFunc(nil)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><title>Job</title></html>"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(NewRotator(nil, []string{"JobNexusTest/1.0"}), time.Second, zap.NewNop())
	page, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "JobNexusTest/1.0", gotUA)
	assert.Equal(t, http.StatusOK, page.HTTPStatusCode)
	assert.Contains(t, page.HTML, "<title>Job</title>")
	assert.Equal(t, server.URL, page.URL)
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewHTTPFetcher(NewRotator(nil, nil), time.Second, zap.NewNop())
	_, err := f.Fetch(context.Background(), server.URL)

	assert.ErrorIs(t, err, repository.ErrBadStatus)
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	f := NewHTTPFetcher(NewRotator(nil, nil), 20*time.Millisecond, zap.NewNop())
	_, err := f.Fetch(context.Background(), server.URL)

	assert.ErrorIs(t, err, repository.ErrFetchTimeout)
}
