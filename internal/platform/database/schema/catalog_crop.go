package schema

// CatalogCropTable represents the 'catalog.crop' table
type CatalogCropTable struct {
	Table     string
	ID        string
	Slug      string
	Name      string
	NameHi    string
	ImageURL  string
	Season    string
	SortOrder string
	CreatedAt string
}

// CatalogCrop is the schema definition for catalog.crop
var CatalogCrop = CatalogCropTable{
	Table:     "catalog.crop",
	ID:        "id",
	Slug:      "slug",
	Name:      "name",
	NameHi:    "namehi",
	ImageURL:  "imageurl",
	Season:    "season",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
}

func (t CatalogCropTable) Columns() []string {
	return []string{t.ID, t.Slug, t.Name, t.NameHi, t.ImageURL, t.Season, t.SortOrder, t.CreatedAt}
}
