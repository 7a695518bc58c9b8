package domain

import "time"

// Aircraft categories used by the browsing hierarchy.
const (
	CategoryCommercial      = "Commercial"
	CategoryGeneralAviation = "General Aviation"
	CategoryMilitary        = "Military"
	CategoryHelicopters     = "Helicopters"
	CategoryCargo           = "Cargo"
)

// Price types.
const (
	PriceTypePaid     = "Paid"
	PriceTypeFreeware = "Freeware"
)

// Aircraft is a catalog entry for a simulated aircraft add-on product.
// AverageRating and TotalReviews are derived from the review set and are
// never mutated independently of it.
type Aircraft struct {
	ID                   string     `bson:"id" json:"id"`
	Name                 string     `bson:"name" json:"name"`
	Developer            string     `bson:"developer" json:"developer"`
	AircraftManufacturer string     `bson:"aircraft_manufacturer" json:"aircraft_manufacturer"`
	AircraftModel        string     `bson:"aircraft_model" json:"aircraft_model"`
	Variant              string     `bson:"variant" json:"variant"`
	Category             string     `bson:"category" json:"category"`
	PriceType            string     `bson:"price_type" json:"price_type"`
	Price                string     `bson:"price,omitempty" json:"price,omitempty"`
	Description          string     `bson:"description" json:"description"`
	ImageURL             string     `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CockpitImageURL      string     `bson:"cockpit_image_url,omitempty" json:"cockpit_image_url,omitempty"`
	AdditionalImages     []string   `bson:"additional_images" json:"additional_images"`
	ReleaseDate          string     `bson:"release_date,omitempty" json:"release_date,omitempty"`
	Compatibility        []string   `bson:"compatibility" json:"compatibility"`
	DownloadURL          string     `bson:"download_url,omitempty" json:"download_url,omitempty"`
	DeveloperWebsite     string     `bson:"developer_website,omitempty" json:"developer_website,omitempty"`
	Features             []string   `bson:"features" json:"features"`
	AverageRating        float64    `bson:"average_rating" json:"average_rating"`
	TotalReviews         int        `bson:"total_reviews" json:"total_reviews"`
	IsArchived           bool       `bson:"is_archived" json:"is_archived"`
	ViewCount            int64      `bson:"view_count" json:"view_count"`
	LastViewed           *time.Time `bson:"last_viewed" json:"last_viewed"`
	ArchivedAt           *time.Time `bson:"archived_at,omitempty" json:"archived_at,omitempty"`
	CreatedAt            time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt            *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// AircraftPatch is a partial update applied to an aircraft. Nil fields are
// left untouched; the merge is explicit rather than reflective.
type AircraftPatch struct {
	Name                 *string   `json:"name,omitempty"`
	Developer            *string   `json:"developer,omitempty"`
	AircraftManufacturer *string   `json:"aircraft_manufacturer,omitempty"`
	AircraftModel        *string   `json:"aircraft_model,omitempty"`
	Variant              *string   `json:"variant,omitempty"`
	Category             *string   `json:"category,omitempty"`
	PriceType            *string   `json:"price_type,omitempty"`
	Price                *string   `json:"price,omitempty"`
	Description          *string   `json:"description,omitempty"`
	ImageURL             *string   `json:"image_url,omitempty"`
	CockpitImageURL      *string   `json:"cockpit_image_url,omitempty"`
	AdditionalImages     *[]string `json:"additional_images,omitempty"`
	ReleaseDate          *string   `json:"release_date,omitempty"`
	Compatibility        *[]string `json:"compatibility,omitempty"`
	DownloadURL          *string   `json:"download_url,omitempty"`
	DeveloperWebsite     *string   `json:"developer_website,omitempty"`
	Features             *[]string `json:"features,omitempty"`
	IsArchived           *bool     `json:"is_archived,omitempty"`
}

// IsEmpty reports whether the patch contains no fields to apply.
func (p *AircraftPatch) IsEmpty() bool {
	return p.Name == nil && p.Developer == nil && p.AircraftManufacturer == nil &&
		p.AircraftModel == nil && p.Variant == nil && p.Category == nil &&
		p.PriceType == nil && p.Price == nil && p.Description == nil &&
		p.ImageURL == nil && p.CockpitImageURL == nil && p.AdditionalImages == nil &&
		p.ReleaseDate == nil && p.Compatibility == nil && p.DownloadURL == nil &&
		p.DeveloperWebsite == nil && p.Features == nil && p.IsArchived == nil
}
