package pinecone

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path   string
	apiKey string
	body   map[string]any
}

// fakeIndexServer replays a canned response and records what it received.
func fakeIndexServer(t *testing.T, status int, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.apiKey = r.Header.Get("Api-Key")
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &rec.body))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestQuery_SendsFilterAndParsesMatches(t *testing.T) {
	srv, rec := fakeIndexServer(t, http.StatusOK, `{
		"matches": [
			{"id": "v1", "score": 0.91, "metadata": {"source": "Lease.pdf", "text": "Monthly rent: $5,000", "doc_type": "lease"}},
			{"id": "v2", "score": 0.84, "metadata": {"source": "T12.xlsx", "text": "NOI: $120,000"}}
		]
	}`)

	client := NewClient(Config{Host: srv.URL, APIKey: "test-key", Dimension: 3})
	matches, err := client.Query(context.Background(), []float32{0.1, 0.2, 0.3}, 7, Filter{
		Sources:    []string{"Lease.pdf"},
		Properties: []string{"Oakwood"},
	})

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "v1", matches[0].ID)
	assert.Equal(t, 0.91, matches[0].Score)
	assert.Equal(t, "Lease.pdf", matches[0].Metadata.Source)
	assert.Equal(t, "lease", matches[0].Metadata.DocType)

	assert.Equal(t, "/query", rec.path)
	assert.Equal(t, "test-key", rec.apiKey)
	assert.Equal(t, float64(7), rec.body["topK"])
	assert.Equal(t, true, rec.body["includeMetadata"])
	assert.Equal(t, map[string]any{
		"source":   map[string]any{"$in": []any{"Lease.pdf"}},
		"property": map[string]any{"$in": []any{"Oakwood"}},
	}, rec.body["filter"])
}

func TestQuery_EmptyFilterIsOmitted(t *testing.T) {
	srv, rec := fakeIndexServer(t, http.StatusOK, `{"matches": []}`)

	client := NewClient(Config{Host: srv.URL, APIKey: "k"})
	matches, err := client.Query(context.Background(), []float32{0.5}, 0, Filter{})

	require.NoError(t, err)
	assert.Empty(t, matches)
	_, hasFilter := rec.body["filter"]
	assert.False(t, hasFilter)
	// non-positive topK falls back to the default
	assert.Equal(t, float64(5), rec.body["topK"])
}

func TestQuery_NonSuccessStatusIsAnError(t *testing.T) {
	srv, _ := fakeIndexServer(t, http.StatusUnauthorized, `{"message": "bad key"}`)

	client := NewClient(Config{Host: srv.URL, APIKey: "wrong"})
	_, err := client.Query(context.Background(), []float32{0.5}, 5, Filter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "/query")
	assert.Contains(t, err.Error(), "401")
}

func TestListDocuments_DeduplicatesSources(t *testing.T) {
	srv, rec := fakeIndexServer(t, http.StatusOK, `{
		"matches": [
			{"id": "1", "metadata": {"source": "Lease.pdf", "doc_type": "lease"}},
			{"id": "2", "metadata": {"source": "Lease.pdf", "doc_type": "lease"}},
			{"id": "3", "metadata": {"source": "T12.xlsx"}},
			{"id": "4", "metadata": {"source": ""}}
		]
	}`)

	client := NewClient(Config{Host: srv.URL, APIKey: "k", Dimension: 4})
	documents, err := client.ListDocuments(context.Background(), "Oakwood")

	require.NoError(t, err)
	assert.Equal(t, []DocumentInfo{
		{Name: "Lease.pdf", Type: "lease", Status: "Ready"},
		{Name: "T12.xlsx", Type: "N/A", Status: "Ready"},
	}, documents)

	// listing sweeps with a zero vector of the index dimension and a large K
	assert.Equal(t, []any{float64(0), float64(0), float64(0), float64(0)}, rec.body["vector"])
	assert.Equal(t, float64(listProbeK), rec.body["topK"])
	assert.Equal(t, map[string]any{
		"property": map[string]any{"$in": []any{"Oakwood"}},
	}, rec.body["filter"])
}

func TestDeleteDocument_FiltersBySource(t *testing.T) {
	srv, rec := fakeIndexServer(t, http.StatusOK, `{}`)

	client := NewClient(Config{Host: srv.URL, APIKey: "k"})
	err := client.DeleteDocument(context.Background(), "Lease.pdf")

	require.NoError(t, err)
	assert.Equal(t, "/vectors/delete", rec.path)
	assert.Equal(t, map[string]any{
		"filter": map[string]any{"source": "Lease.pdf"},
	}, rec.body)
}
