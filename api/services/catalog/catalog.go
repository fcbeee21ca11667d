// Package catalog holds the purchasable tiers and datasets. Everything here is
// fixed at build time; grants are always derived from these tables and never from
// client input.
package catalog

import (
	"errors"
	"strings"
)

type TierID string

type DatasetID string

const (
	TierDeveloper TierID = "developer"
	TierComplete  TierID = "complete"
)

const (
	DatasetMasajid    DatasetID = "masajid"
	DatasetEateries   DatasetID = "eateries"
	DatasetMarkets    DatasetID = "markets"
	DatasetBusinesses DatasetID = "businesses"
)

var (
	// ErrUnknownTier indicates the tier id is empty or not in the catalog.
	ErrUnknownTier = errors.New("unknown tier")
	// ErrDatasetRequired indicates a single-dataset tier was requested without a known dataset.
	ErrDatasetRequired = errors.New("dataset required")
)

// Tier is a purchasable access level. Price is in US cents.
type Tier struct {
	ID           TierID `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	DatasetCount int    `json:"datasetCount"`
}

// AllDatasets reports whether the tier grants every dataset in the catalog.
func (t Tier) AllDatasets() bool { return t.DatasetCount == len(datasetOrder) }

// Dataset is a named category of data served by the data API.
type Dataset struct {
	ID          DatasetID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Endpoint    string    `json:"endpoint"`
}

var datasetOrder = []DatasetID{DatasetMasajid, DatasetEateries, DatasetMarkets, DatasetBusinesses}

var datasets = map[DatasetID]Dataset{
	DatasetMasajid: {
		ID:          DatasetMasajid,
		Name:        "Masajid",
		Description: "Mosques and Islamic centers",
		Endpoint:    "/v1/masajid",
	},
	DatasetEateries: {
		ID:          DatasetEateries,
		Name:        "Halal Eateries",
		Description: "Restaurants, cafes, food trucks",
		Endpoint:    "/v1/halal-eateries",
	},
	DatasetMarkets: {
		ID:          DatasetMarkets,
		Name:        "Halal Markets",
		Description: "Grocery stores, butchers",
		Endpoint:    "/v1/halal-markets",
	},
	DatasetBusinesses: {
		ID:          DatasetBusinesses,
		Name:        "Businesses",
		Description: "Muslim-owned businesses",
		Endpoint:    "/v1/businesses",
	},
}

var tierOrder = []TierID{TierDeveloper, TierComplete}

var tiers = map[TierID]Tier{
	TierDeveloper: {
		ID:           TierDeveloper,
		Name:         "Developer",
		Price:        9900,
		PriceDisplay: "$99",
		DatasetCount: 1,
	},
	TierComplete: {
		ID:           TierComplete,
		Name:         "Complete",
		Price:        24900,
		PriceDisplay: "$249",
		DatasetCount: len(datasetOrder),
	},
}

// Grant is the server-resolved result of a tier selection.
type Grant struct {
	Tier     Tier
	Datasets []Dataset
}

// DatasetIDs returns the granted dataset ids in catalog order.
func (g Grant) DatasetIDs() []string {
	ids := make([]string, 0, len(g.Datasets))
	for _, d := range g.Datasets {
		ids = append(ids, string(d.ID))
	}
	return ids
}

// DatasetNames returns the granted dataset display names.
func (g Grant) DatasetNames() []string {
	names := make([]string, 0, len(g.Datasets))
	for _, d := range g.Datasets {
		names = append(names, d.Name)
	}
	return names
}

// Resolve maps a tier and an optional dataset choice to the datasets that tier
// grants. Tiers covering every dataset ignore the dataset argument.
func Resolve(tierID, datasetID string) (Grant, error) {
	tier, ok := LookupTier(tierID)
	if !ok {
		return Grant{}, ErrUnknownTier
	}
	if tier.AllDatasets() {
		return Grant{Tier: tier, Datasets: Datasets()}, nil
	}
	ds, ok := LookupDataset(datasetID)
	if !ok {
		return Grant{}, ErrDatasetRequired
	}
	return Grant{Tier: tier, Datasets: []Dataset{ds}}, nil
}

// LookupTier finds a tier by exact id.
func LookupTier(id string) (Tier, bool) {
	t, ok := tiers[TierID(id)]
	return t, ok
}

// LookupDataset finds a dataset by exact id.
func LookupDataset(id string) (Dataset, bool) {
	d, ok := datasets[DatasetID(id)]
	return d, ok
}

// Tiers lists every tier in display order.
func Tiers() []Tier {
	out := make([]Tier, 0, len(tierOrder))
	for _, id := range tierOrder {
		out = append(out, tiers[id])
	}
	return out
}

// Datasets lists every dataset in catalog order.
func Datasets() []Dataset {
	out := make([]Dataset, 0, len(datasetOrder))
	for _, id := range datasetOrder {
		out = append(out, datasets[id])
	}
	return out
}

// DisplayNames maps dataset ids to display names, passing unknown ids through.
func DisplayNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := LookupDataset(strings.TrimSpace(id)); ok {
			names = append(names, d.Name)
			continue
		}
		names = append(names, id)
	}
	return names
}

// TierDisplayName returns the tier's display name, or the raw id if unknown.
func TierDisplayName(id string) string {
	if t, ok := LookupTier(id); ok {
		return t.Name
	}
	return id
}
