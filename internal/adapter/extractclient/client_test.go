package extractclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Extract_Success(t *testing.T) {
	var gotBody entity.ExtractionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/extract-job", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Engineer","company":"Acme","source_url":"https://acme.co/jobs/1","_extraction_note":"note"}`))
	}))
	defer server.Close()

	client := New(server.URL + "/")
	result, err := client.Extract(context.Background(), "https://acme.co/jobs/1")

	require.NoError(t, err)
	assert.Equal(t, "https://acme.co/jobs/1", gotBody.URL)
	assert.Equal(t, "Engineer", result.Title)
	assert.Equal(t, "Acme", result.Company)
	assert.Equal(t, "note", result.Note)
	assert.False(t, result.Failed())
}

func TestClient_Extract_ErrorBodyIsAResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid URL format"}`))
	}))
	defer server.Close()

	result, err := New(server.URL).Extract(context.Background(), "https://acme.co/jobs/1")

	require.NoError(t, err)
	assert.True(t, result.Failed())
	assert.Equal(t, "Invalid URL format", result.Error)
}

func TestClient_Extract_NonJSONIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	_, err := New(server.URL).Extract(context.Background(), "https://acme.co/jobs/1")

	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_Extract_NullBodyIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	result, err := New(server.URL).Extract(context.Background(), "https://acme.co/jobs/1")

	assert.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, result)
}

func TestClient_Extract_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).Extract(context.Background(), "https://acme.co/jobs/1")

	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_Extract_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := New(server.URL, WithTimeout(20*time.Millisecond)).Extract(context.Background(), "https://acme.co/jobs/1")

	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_CreateJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		var job entity.Job
		require.NoError(t, json.NewDecoder(r.Body).Decode(&job))
		if job.Title == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Please fill in all required fields"}`))
			return
		}
		job.ID = 7
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(job)
	}))
	defer server.Close()

	client := New(server.URL)

	created, err := client.CreateJob(context.Background(), &entity.Job{Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "Engineer", created.Title)

	_, err = client.CreateJob(context.Background(), &entity.Job{Company: "Acme"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Please fill in all required fields", apiErr.Message)
}
