package dataapi

// Stats is the public listing summary.
type Stats struct {
	TotalListings   int `json:"total_listings"`
	EateriesCount   int `json:"eateries_count"`
	MarketsCount    int `json:"markets_count"`
	MasajidCount    int `json:"masajid_count"`
	BusinessesCount int `json:"businesses_count"`
	EventsCount     int `json:"events_count"`
}

// RegionCounts are per-dataset listing counts for one region.
type RegionCounts struct {
	Masajid    int `json:"masajid"`
	Eateries   int `json:"eateries"`
	Markets    int `json:"markets"`
	Businesses int `json:"businesses"`
	Events     int `json:"events"`
}

// DatasetTotal sums the four licensable datasets. Events are not licensed.
func (c RegionCounts) DatasetTotal() int {
	return c.Masajid + c.Eateries + c.Markets + c.Businesses
}

// Total sums every count including events.
func (c RegionCounts) Total() int { return c.DatasetTotal() + c.Events }

// Coverage maps region codes to their counts.
type Coverage struct {
	CountsByRegion map[string]RegionCounts `json:"counts_by_region"`
}

// PreviewItem is the public view of a listing: name and city only.
type PreviewItem struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type PreviewSamples struct {
	Masajid    []PreviewItem `json:"masajid"`
	Eateries   []PreviewItem `json:"eateries"`
	Markets    []PreviewItem `json:"markets"`
	Businesses []PreviewItem `json:"businesses"`
	Events     []PreviewItem `json:"events"`
}

// Preview is a handful of sample listings for a region.
type Preview struct {
	Region  string         `json:"region"`
	Samples PreviewSamples `json:"samples"`
}

// Address is shared by every listing type.
type Address struct {
	Street  *string `json:"street"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode *string `json:"zip_code"`
}

type HalalEatery struct {
	EateryID         string   `json:"eatery_id"`
	Name             string   `json:"name"`
	CuisineStyle     *string  `json:"cuisine_style"`
	Address          Address  `json:"address"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Phone            *string  `json:"phone"`
	Website          *string  `json:"website"`
	HoursRaw         *string  `json:"hours_raw"`
	GoogleRating     *float64 `json:"google_rating"`
	HalalStatus      string   `json:"halal_status"`
	IsFavorite       bool     `json:"is_favorite"`
	IsFoodTruck      bool     `json:"is_food_truck"`
	IsCarryOutOnly   bool     `json:"is_carry_out_only"`
	IsCafeBakery     bool     `json:"is_cafe_bakery"`
	HasManyLocations bool     `json:"has_many_locations"`
	Source           string   `json:"source"`
	GooglePlaceID    *string  `json:"google_place_id"`
	UpdatedAt        string   `json:"updated_at"`
}

type HalalMarket struct {
	MarketID      string   `json:"market_id"`
	Name          string   `json:"name"`
	Category      *string  `json:"category"`
	Address       Address  `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Phone         *string  `json:"phone"`
	Website       *string  `json:"website"`
	HoursRaw      *string  `json:"hours_raw"`
	GoogleRating  *float64 `json:"google_rating"`
	HalalStatus   string   `json:"halal_status"`
	HasButcher    bool     `json:"has_butcher"`
	HasDeli       bool     `json:"has_deli"`
	SellsTurkey   bool     `json:"sells_turkey"`
	Source        string   `json:"source"`
	GooglePlaceID *string  `json:"google_place_id"`
	UpdatedAt     string   `json:"updated_at"`
}

type Masjid struct {
	MasjidID     string   `json:"masjid_id"`
	Name         string   `json:"name"`
	Denomination *string  `json:"denomination"`
	Address      Address  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Phone        *string  `json:"phone"`
	Website      *string  `json:"website"`
	UpdatedAt    string   `json:"updated_at"`
}

// PublicBusiness is the public listing shape, distinct from the sync record.
type PublicBusiness struct {
	BusinessID  string   `json:"business_id"`
	Name        string   `json:"name"`
	Category    *string  `json:"category"`
	Address     Address  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Phone       *string  `json:"phone"`
	WhatsApp    *string  `json:"whatsapp"`
	Website     *string  `json:"website"`
	Description *string  `json:"description"`
	MuslimOwned bool     `json:"muslim_owned"`
	UpdatedAt   string   `json:"updated_at"`
}

// ListResponse is the envelope of every public list endpoint.
type ListResponse[T any] struct {
	Version string `json:"version"`
	Region  string `json:"region"`
	Count   int    `json:"count"`
	Items   []T    `json:"items"`
}

// Business is the full record served by the credentialed sync endpoint.
type Business struct {
	BusinessID            string            `json:"business_id"`
	BusinessName          string            `json:"business_name"`
	BusinessIndustry      *string           `json:"business_industry"`
	BusinessIndustryOther *string           `json:"business_industry_other"`
	BusinessDescription   *string           `json:"business_description"`
	BusinessWebsite       *string           `json:"business_website"`
	BusinessAddress       *string           `json:"business_address"`
	BusinessCity          string            `json:"business_city"`
	BusinessState         string            `json:"business_state"`
	BusinessZip           *string           `json:"business_zip"`
	BusinessPhone         *string           `json:"business_phone"`
	BusinessWhatsApp      *string           `json:"business_whatsapp"`
	Latitude              *float64          `json:"latitude"`
	Longitude             *float64          `json:"longitude"`
	OwnerName             string            `json:"owner_name"`
	OwnerEmail            string            `json:"owner_email"`
	OwnerPhone            *string           `json:"owner_phone"`
	MuslimOwned           bool              `json:"muslim_owned"`
	GooglePlaceID         *string           `json:"google_place_id"`
	GoogleRating          *float64          `json:"google_rating"`
	GoogleReviewCount     *int              `json:"google_review_count"`
	BusinessHours         map[string]string `json:"business_hours"`
	Photos                []string          `json:"photos"`
	Status                string            `json:"status"`
	UpdatedAt             string            `json:"updated_at"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

type BusinessSyncResponse struct {
	Businesses []Business `json:"businesses"`
	Pagination Pagination `json:"pagination"`
}

// ListParams filters the public list endpoints. Zero values are omitted.
type ListParams struct {
	Region        string
	City          string
	Cuisine       string
	HalalStatus   string
	Denomination  string
	FavoritesOnly bool
	Limit         int
	Offset        int
}
