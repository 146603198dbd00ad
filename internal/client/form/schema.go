package form

import (
	"strings"
	"unicode"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

// Kind is the value shape of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindCurrency
	KindBool
	KindNested
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindCurrency:
		return "currency"
	case KindBool:
		return "bool"
	case KindNested:
		return "nested"
	case KindList:
		return "list"
	}
	return "unknown"
}

func (k Kind) scalar() bool {
	return k == KindText || k == KindNumber || k == KindCurrency
}

func (k Kind) numeric() bool {
	return k == KindNumber || k == KindCurrency
}

// SubField is one named member of a nested field.
type SubField struct {
	Name string
	Kind Kind
}

type Field struct {
	Name  string
	Label string
	Kind  Kind
	Sub   []SubField
	// Asset marks fields whose values are uploaded file URLs.
	Asset bool
}

// DisplayName is Label, or the humanized Name when no label is set.
func (f Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return Humanize(f.Name)
}

func (f Field) sub(name string) (SubField, bool) {
	for _, s := range f.Sub {
		if s.Name == name {
			return s, true
		}
	}
	return SubField{}, false
}

// Schema lists the editable fields of a resource in display order.
type Schema struct {
	Resource models.Resource
	Fields   []Field
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return len(s.Fields)
}

var ProductSchema = Schema{
	Resource: models.ResourceProducts,
	Fields: []Field{
		{Name: "name", Kind: KindText},
		{Name: "description", Kind: KindText},
		{Name: "brand", Kind: KindText},
		{Name: "category", Kind: KindText},
		{Name: "price", Kind: KindCurrency},
		{Name: "originalPrice", Kind: KindCurrency},
		{Name: "stock", Kind: KindNumber},
		{Name: "dosage", Kind: KindText},
		{Name: "mainImage", Kind: KindText, Asset: true},
		{Name: "weight", Kind: KindNested, Sub: []SubField{{"value", KindNumber}, {"unit", KindText}}},
		{Name: "inStock", Label: "In Stock", Kind: KindBool},
		{Name: "isFeatured", Label: "Featured", Kind: KindBool},
		{Name: "requiresPrescription", Label: "Requires Prescription", Kind: KindBool},
		{Name: "ingredients", Kind: KindList},
		{Name: "tags", Kind: KindList},
		{Name: "images", Kind: KindList, Asset: true},
	},
}

var CategorySchema = Schema{
	Resource: models.ResourceCategories,
	Fields: []Field{
		{Name: "name", Kind: KindText},
		{Name: "slug", Kind: KindText},
		{Name: "description", Kind: KindText},
		{Name: "image", Kind: KindText, Asset: true},
		{Name: "isActive", Label: "Active", Kind: KindBool},
	},
}

var BannerSchema = Schema{
	Resource: models.ResourceBanners,
	Fields: []Field{
		{Name: "title", Kind: KindText},
		{Name: "subtitle", Kind: KindText},
		{Name: "link", Kind: KindText},
		{Name: "image", Kind: KindText, Asset: true},
		{Name: "position", Kind: KindNumber},
		{Name: "isActive", Label: "Active", Kind: KindBool},
	},
}

var CustomerSchema = Schema{
	Resource: models.ResourceCustomers,
	Fields: []Field{
		{Name: "name", Kind: KindText},
		{Name: "email", Kind: KindText},
		{Name: "phone", Kind: KindText},
		{Name: "isActive", Label: "Active", Kind: KindBool},
	},
}

// SchemaFor returns the edit schema of resource. Orders have none; their
// status is changed through a dedicated update.
func SchemaFor(r models.Resource) (Schema, bool) {
	switch r {
	case models.ResourceProducts:
		return ProductSchema, true
	case models.ResourceCategories:
		return CategorySchema, true
	case models.ResourceBanners:
		return BannerSchema, true
	case models.ResourceCustomers:
		return CustomerSchema, true
	}
	return Schema{}, false
}

// Humanize turns a camelCase field name into a title, e.g.
// "originalPrice" -> "Original Price".
func Humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		case r == '_' || r == '-':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
