package schema

// CatalogDistributorTable represents the 'catalog.distributor' table
type CatalogDistributorTable struct {
	Table     string
	ID        string
	Name      string
	Address   string
	City      string
	State     string
	PinCode   string
	Phone     string
	Latitude  string
	Longitude string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// CatalogDistributor is the schema definition for catalog.distributor
var CatalogDistributor = CatalogDistributorTable{
	Table:     "catalog.distributor",
	ID:        "id",
	Name:      "name",
	Address:   "address",
	City:      "city",
	State:     "state",
	PinCode:   "pincode",
	Phone:     "phone",
	Latitude:  "latitude",
	Longitude: "longitude",
	IsActive:  "isactive",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CatalogDistributorTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Address, t.City, t.State, t.PinCode, t.Phone,
		t.Latitude, t.Longitude, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
