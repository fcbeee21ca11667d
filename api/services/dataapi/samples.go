package dataapi

import (
	"context"
	"fmt"

	"github.com/bayanlab/bayanlab-commerce/api/services/catalog"
)

// MaxSamples caps public sample listings. Samples expose name and city only;
// everything else needs a license.
const MaxSamples = 10

// Samples returns up to limit name/city pairs from one dataset's list endpoint.
func (c *Client) Samples(ctx context.Context, dataset catalog.DatasetID, region string, limit int) ([]PreviewItem, error) {
	if limit <= 0 || limit > MaxSamples {
		limit = MaxSamples
	}
	p := ListParams{Region: region, Limit: limit}

	var items []PreviewItem
	switch dataset {
	case catalog.DatasetEateries:
		resp, err := c.Eateries(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			items = append(items, PreviewItem{Name: it.Name, City: it.Address.City})
		}
	case catalog.DatasetMarkets:
		resp, err := c.Markets(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			items = append(items, PreviewItem{Name: it.Name, City: it.Address.City})
		}
	case catalog.DatasetMasajid:
		resp, err := c.Masajid(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			items = append(items, PreviewItem{Name: it.Name, City: it.Address.City})
		}
	case catalog.DatasetBusinesses:
		resp, err := c.Businesses(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			items = append(items, PreviewItem{Name: it.Name, City: it.Address.City})
		}
	default:
		return nil, fmt.Errorf("unknown dataset %q", dataset)
	}

	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []PreviewItem{}
	}
	return items, nil
}
