package esindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// searchFields lists the queried document fields with their boosts. Name
// matches score highest, then the descriptive fields, then the catch-all
// rendered content.
var searchFields = []string{
	"name^3",
	"bio^2",
	"skills^2",
	"designation^2",
	"target_industries",
	"full_text_content",
}

// Index writes or replaces the document for a profile.
func (c *Client) Index(ctx context.Context, doc domain.IndexDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: marshal document %s: %v", domain.ErrKeywordIndexUnavailable, doc.ID, err)
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithDocumentID(doc.ID),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: index document %s: %v", domain.ErrKeywordIndexUnavailable, doc.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: index document %s: %s", domain.ErrKeywordIndexUnavailable, doc.ID, res.Status())
	}

	return nil
}

// SearchMulti runs a fuzzy multi-field match for the query text and returns
// scored document hits. The request carries no size cap; the index default
// applies.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]domain.KeywordHit, error) {
	request := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    searchFields,
				"fuzziness": "AUTO",
			},
		},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal search request: %v", domain.ErrKeywordIndexUnavailable, err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", domain.ErrKeywordIndexUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search: %s", domain.ErrKeywordIndexUnavailable, res.Status())
	}

	hits, err := decodeHits(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeywordIndexUnavailable, err)
	}

	c.logger.Debug("keyword search complete", zap.Int("hits", len(hits)))

	return hits, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID    string  `json:"_id"`
			Score float64 `json:"_score"`
		} `json:"hits"`
	} `json:"hits"`
}

func decodeHits(body io.Reader) ([]domain.KeywordHit, error) {
	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %v", err)
	}

	hits := make([]domain.KeywordHit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hits = append(hits, domain.KeywordHit{RecordID: h.ID, Score: h.Score})
	}

	return hits, nil
}
