package crop

import "time"

// Crop represents a crop farmers can pick as a preference.
type Crop struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	NameHi    string    `json:"name_hi"`
	ImageURL  string    `json:"image_url,omitempty"`
	Season    string    `json:"season,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"-"`
}
