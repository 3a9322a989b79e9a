package talentdex

import "context"

// Search runs a hybrid profile search.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.post(ctx, "/api/v1/search", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// IndexBatch embeds and indexes a batch of profiles.
func (c *Client) IndexBatch(ctx context.Context, profiles []Profile) (IndexReport, error) {
	var report IndexReport
	body := map[string][]Profile{"profiles": profiles}
	if err := c.post(ctx, "/api/v1/index/batch", body, &report); err != nil {
		return IndexReport{}, err
	}
	return report, nil
}

// Reindex regenerates embeddings for one profile.
func (c *Client) Reindex(ctx context.Context, profile Profile) error {
	body := map[string]Profile{"record": profile}
	return c.post(ctx, "/api/v1/index/reindex", body, nil)
}

// Backfill embeds every stored profile that has no embedding row yet.
func (c *Client) Backfill(ctx context.Context) (IndexReport, error) {
	var report IndexReport
	if err := c.post(ctx, "/api/v1/index/backfill", struct{}{}, &report); err != nil {
		return IndexReport{}, err
	}
	return report, nil
}
