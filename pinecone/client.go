// Package pinecone is a minimal REST client to a Pinecone serverless index.
// Only the surface the query pipeline needs is covered: similarity query with
// metadata filters, document listing and filtered deletion.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// listProbeK is the top-K used when enumerating documents. Pinecone has no
// listing API, so a zero-vector query with a large K is used to sweep
// metadata, the same workaround the ingestion side relies on.
const listProbeK = 1000

type Config struct {
	Host      string // index host, e.g. https://my-index-abc123.svc.pinecone.io
	APIKey    string
	Dimension int // embedding dimension of the index
	Timeout   time.Duration
}

type Client struct {
	host      string
	apiKey    string
	dimension int
	client    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		host:      cfg.Host,
		apiKey:    cfg.APIKey,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: timeout},
	}
}

// Metadata is the per-vector payload written at ingestion time.
type Metadata struct {
	Source   string `json:"source"`
	Text     string `json:"text"`
	DocType  string `json:"doc_type,omitempty"`
	Property string `json:"property,omitempty"`
}

type Match struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Metadata Metadata `json:"metadata"`
}

// Filter restricts a query to the given source documents and/or properties.
// Empty slices place no restriction.
type Filter struct {
	Sources    []string
	Properties []string
}

func (f Filter) predicate() map[string]any {
	pred := map[string]any{}
	if len(f.Sources) > 0 {
		pred["source"] = map[string]any{"$in": f.Sources}
	}
	if len(f.Properties) > 0 {
		pred["property"] = map[string]any{"$in": f.Properties}
	}
	if len(pred) == 0 {
		return nil
	}
	return pred
}

// Query runs a similarity search and returns matches in descending score order.
func (c *Client) Query(ctx context.Context, vector []float32, topK int, filter Filter) ([]Match, error) {
	if topK <= 0 {
		topK = 5
	}
	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
	}
	if pred := filter.predicate(); pred != nil {
		body["filter"] = pred
	}

	var resp struct {
		Matches []Match `json:"matches"`
	}
	if err := c.postJSON(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// DocumentInfo describes one ingested source document.
type DocumentInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// ListDocuments enumerates the distinct source documents in the index,
// optionally restricted to a property.
func (c *Client) ListDocuments(ctx context.Context, property string) ([]DocumentInfo, error) {
	filter := Filter{}
	if property != "" {
		filter.Properties = []string{property}
	}

	matches, err := c.Query(ctx, make([]float32, c.dimension), listProbeK, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(matches))
	documents := make([]DocumentInfo, 0, len(matches))
	for _, m := range matches {
		source := m.Metadata.Source
		if source == "" {
			continue
		}
		if _, ok := seen[source]; ok {
			continue
		}
		seen[source] = struct{}{}

		docType := m.Metadata.DocType
		if docType == "" {
			docType = "N/A"
		}
		documents = append(documents, DocumentInfo{Name: source, Type: docType, Status: "Ready"})
	}
	return documents, nil
}

// DeleteDocument removes every vector belonging to the named source document.
func (c *Client) DeleteDocument(ctx context.Context, source string) error {
	body := map[string]any{
		"filter": map[string]any{"source": source},
	}
	return c.postJSON(ctx, "/vectors/delete", body, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("pinecone POST %s failed: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
