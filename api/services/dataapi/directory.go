package dataapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// stateNames is every US state plus DC. Coverage regions outside it are not listed.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District of Columbia",
}

// Regions the data API reports that are not US states.
var excludedRegions = map[string]bool{"UK": true, "KZ": true, "ON": true, "US": true}

// StateName returns the display name for a state code, case-insensitively.
func StateName(code string) (string, bool) {
	name, ok := stateNames[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}

type StateSummary struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Total int    `json:"total"`
	RegionCounts
}

type Overview struct {
	Stats  Stats          `json:"stats"`
	States []StateSummary `json:"states"`
}

type StateView struct {
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Counts  RegionCounts   `json:"counts"`
	Total   int            `json:"total"`
	Samples PreviewSamples `json:"samples"`
}

// Directory builds the state listing pages from the data API. Upstream failures
// degrade to empty sections instead of failing the page.
type Directory struct {
	src Source
}

func NewDirectory(src Source) *Directory { return &Directory{src: src} }

// Overview lists states with listings, busiest first.
func (d *Directory) Overview(ctx context.Context) Overview {
	var out Overview
	stats, err := d.src.Stats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Directory stats unavailable")
	} else {
		out.Stats = stats
	}

	coverage, err := d.src.Coverage(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Directory coverage unavailable")
		out.States = []StateSummary{}
		return out
	}
	out.States = statesFromCoverage(coverage)
	return out
}

func statesFromCoverage(c Coverage) []StateSummary {
	states := make([]StateSummary, 0, len(c.CountsByRegion))
	for code, counts := range c.CountsByRegion {
		if excludedRegions[code] {
			continue
		}
		name, ok := stateNames[code]
		if !ok {
			continue
		}
		states = append(states, StateSummary{Code: code, Name: name, Total: counts.DatasetTotal(), RegionCounts: counts})
	}
	sort.SliceStable(states, func(i, j int) bool {
		if states[i].Total != states[j].Total {
			return states[i].Total > states[j].Total
		}
		return states[i].Code < states[j].Code
	})
	return states
}

// State returns counts and samples for one state. Unknown codes return ErrUnknownRegion.
func (d *Directory) State(ctx context.Context, code string) (StateView, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name, ok := stateNames[code]
	if !ok {
		return StateView{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	view := StateView{Code: code, Name: name, Samples: emptySamples()}

	if coverage, err := d.src.Coverage(ctx); err != nil {
		log.Warn().Err(err).Str("state", code).Msg("Directory coverage unavailable")
	} else {
		view.Counts = coverage.CountsByRegion[code]
	}
	view.Total = view.Counts.Total()

	if preview, err := d.src.Preview(ctx, code); err != nil {
		log.Warn().Err(err).Str("state", code).Msg("Directory preview unavailable")
	} else {
		view.Samples = fillSamples(preview.Samples)
	}
	return view, nil
}

func emptySamples() PreviewSamples {
	return fillSamples(PreviewSamples{})
}

// fillSamples replaces nil slices so every section renders as [].
func fillSamples(s PreviewSamples) PreviewSamples {
	for _, p := range []*[]PreviewItem{&s.Masajid, &s.Eateries, &s.Markets, &s.Businesses, &s.Events} {
		if *p == nil {
			*p = []PreviewItem{}
		}
	}
	return s
}
