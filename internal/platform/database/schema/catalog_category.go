package schema

// CatalogCategoryTable represents the 'catalog.category' table
type CatalogCategoryTable struct {
	Table     string
	ID        string
	Slug      string
	Name      string
	NameHi    string
	SortOrder string
	CreatedAt string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogCategoryTable{
	Table:     "catalog.category",
	ID:        "id",
	Slug:      "slug",
	Name:      "name",
	NameHi:    "namehi",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
}

func (t CatalogCategoryTable) Columns() []string {
	return []string{t.ID, t.Slug, t.Name, t.NameHi, t.SortOrder, t.CreatedAt}
}
