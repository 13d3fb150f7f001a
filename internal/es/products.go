package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

// ProductIndex keeps product documents in an Elasticsearch index keyed by id.
type ProductIndex struct {
	Client *elasticsearch.Client
	Index  string
}

type productDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Size        string   `json:"size"`
	Price       string   `json:"price"`
	Popular     bool     `json:"popular"`
	Features    []string `json:"features"`
}

func (x *ProductIndex) IndexProduct(ctx context.Context, p *models.Product) error {
	doc := productDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Size:        p.Size,
		Price:       p.Price.String(),
		Popular:     p.Popular,
		Features:    p.Features,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("search index: encode: %w", err)
	}

	res, err := x.Client.Index(x.Index, &buf,
		x.Client.Index.WithContext(ctx),
		x.Client.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return fmt.Errorf("search index: index %s: %w", doc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.StatusCode, res.Body)
	}
	return nil
}

// DeleteProduct removes the document; a document that is already gone is not an error.
func (x *ProductIndex) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := x.Client.Delete(x.Index, id.String(), x.Client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search index: delete %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res.StatusCode, res.Body)
	}
	return nil
}

// SearchIDs runs a fuzzy multi_match over name and description and returns
// the total hit count with the ids of the requested page, best match first.
func (x *ProductIndex) SearchIDs(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from":    from,
		"size":    size,
		"_source": false,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search index: encode query: %w", err)
	}

	res, err := x.Client.Search(
		x.Client.Search.WithContext(ctx),
		x.Client.Search.WithIndex(x.Index),
		x.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search index: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res.StatusCode, res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search index: decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return r.Hits.Total.Value, ids, nil
}

func responseError(op string, status int, body io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("search index: %s returned %d: %s", op, status, bytes.TrimSpace(b))
}
