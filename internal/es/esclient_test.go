package es

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_schema/internal/models"
)

type recorded struct {
	method, path, body string
}

type fakeES struct {
	mu   sync.Mutex
	reqs []recorded
}

func (f *fakeES) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.reqs = append(f.reqs, recorded{method: r.Method, path: r.URL.Path, body: string(body)})
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[{"_source":{"id":3,"name":"lamp"}},{"_source":{"id":1,"name":"desk lamp"}}]}}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}
}

func newTestIndex(t *testing.T) (*ProductIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "", "")
	require.NoError(t, err)
	return NewProductIndex(client, "product"), fake
}

func TestProductIndex_IndexProduct(t *testing.T) {
	idx, fake := newTestIndex(t)

	p := &models.Product{ID: 5, Name: "lamp", Description: "a lamp", Price: decimal.RequireFromString("12.50"), CategoryID: 2}
	require.NoError(t, idx.IndexProduct(t.Context(), p))

	req := fake.last()
	assert.Equal(t, "/product/_doc/5", req.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.body), &doc))
	assert.Equal(t, "lamp", doc["name"])
	assert.Equal(t, "12.5", doc["price"])
}

func TestProductIndex_DeleteMissingIsNotAnError(t *testing.T) {
	idx, fake := newTestIndex(t)

	require.NoError(t, idx.DeleteProduct(t.Context(), 9))
	assert.Equal(t, http.MethodDelete, fake.last().method)
	assert.Equal(t, "/product/_doc/9", fake.last().path)
}

func TestProductIndex_Search(t *testing.T) {
	idx, fake := newTestIndex(t)

	total, ids, err := idx.Search(t.Context(), "lamp", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []uint{3, 1}, ids)

	assert.Contains(t, fake.last().body, `"multi_match"`)
	assert.Contains(t, fake.last().body, `"lamp"`)
}
