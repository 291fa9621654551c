package search

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedTransport struct {
	body string
}

func (t *cannedTransport) RoundTrip(*http.Request) (*http.Response, error) {
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(t.body)),
	}, nil
}

func newCannedClient(t *testing.T, body string) *elasticsearch.Client {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: &cannedTransport{body: body},
	})
	require.NoError(t, err)
	return client
}

func TestSearchDecodesHitSources(t *testing.T) {
	body := `{"hits":{"total":{"value":2},"hits":[` +
		`{"_source":{"id":7,"name":"Widget","price":9.99,"description":"a widget"}},` +
		`{"_source":{"id":8,"name":"Gadget","price":19.99,"description":""}}]}}`

	client := newCannedClient(t, body)

	total, products, err := Search(context.Background(), client, "products", "widget", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, products, 2)

	assert.EqualValues(t, 7, products[0].ID)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, 9.99, products[0].Price)
	assert.Equal(t, "a widget", products[0].Description)

	assert.EqualValues(t, 8, products[1].ID)
	assert.Equal(t, "Gadget", products[1].Name)
}

func TestSearchNoHits(t *testing.T) {
	client := newCannedClient(t, `{"hits":{"total":{"value":0},"hits":[]}}`)

	total, products, err := Search(context.Background(), client, "products", "nothing", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, products)
}
