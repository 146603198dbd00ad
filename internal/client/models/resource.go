// Package models holds the typed records exchanged with the pharmacy API.
//
// JSON tags follow the API wire format: camelCase field names and "_id" for
// record identifiers. Numeric fields are typed here; the form layer keeps its
// own string representation and converts through an explicit parse step.
package models

// Resource names a REST collection on the API.
type Resource string

const (
	ResourceProducts   Resource = "products"
	ResourceCategories Resource = "categories"
	ResourceOrders     Resource = "orders"
	ResourceCustomers  Resource = "customers"
	ResourceBanners    Resource = "banners"
)

// Resources lists every collection the admin client manages.
var Resources = []Resource{
	ResourceProducts,
	ResourceCategories,
	ResourceOrders,
	ResourceCustomers,
	ResourceBanners,
}

func (r Resource) String() string { return string(r) }

// ParseResource resolves a user-typed collection name. Singular forms are
// accepted ("product" -> products).
func ParseResource(s string) (Resource, bool) {
	for _, r := range Resources {
		if s == string(r) || s+"s" == string(r) || (s == "category" && r == ResourceCategories) {
			return r, true
		}
	}
	return "", false
}

// Pagination is the page descriptor returned alongside list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Page is one fetched page of a collection.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
