package schema

// CatalogProductTable represents the 'catalog.product' table
type CatalogProductTable struct {
	Table         string
	ID            string
	Slug          string
	Name          string
	NameHi        string
	Description   string
	DescriptionHi string
	CategoryID    string
	ImageURL      string
	PackSizes     string
	Price         string
	IsBestSeller  string
	IsActive      string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CatalogProduct is the schema definition for catalog.product
var CatalogProduct = CatalogProductTable{
	Table:         "catalog.product",
	ID:            "id",
	Slug:          "slug",
	Name:          "name",
	NameHi:        "namehi",
	Description:   "description",
	DescriptionHi: "descriptionhi",
	CategoryID:    "categoryid",
	ImageURL:      "imageurl",
	PackSizes:     "packsizes",
	Price:         "price",
	IsBestSeller:  "isbestseller",
	IsActive:      "isactive",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

// Columns returns all standard column names
func (t CatalogProductTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Name, t.NameHi, t.Description, t.DescriptionHi,
		t.CategoryID, t.ImageURL, t.PackSizes, t.Price, t.IsBestSeller,
		t.IsActive, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
