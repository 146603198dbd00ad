package store

import (
	"fmt"
	"slices"
	"strings"
)

// Collection names served by the API.
const (
	Products   = "products"
	Categories = "categories"
	Orders     = "orders"
	Customers  = "customers"
	Banners    = "banners"
)

// Collections lists every collection in a fixed order.
var Collections = []string{Products, Categories, Orders, Customers, Banners}

// Order and payment states accepted on orders.
var (
	OrderStatuses   = []string{"pending", "processing", "shipped", "delivered", "cancelled"}
	PaymentStatuses = []string{"pending", "paid", "failed", "refunded"}
)

// LowStockThreshold marks a product as low on stock in the dashboard.
const LowStockThreshold = 10

// rules describes how a collection's records are checked and searched.
type rules struct {
	required []string
	numbers  []string
	bools    []string
	search   []string
	enums    map[string][]string
	defaults map[string]any
}

var collectionRules = map[string]rules{
	Products: {
		required: []string{"name", "price"},
		numbers:  []string{"price", "originalPrice", "stock"},
		bools:    []string{"inStock", "isFeatured", "requiresPrescription"},
		search:   []string{"name", "brand", "description", "category"},
		defaults: map[string]any{"stock": 0.0, "inStock": true, "isFeatured": false, "requiresPrescription": false, "images": []any{}, "tags": []any{}, "ingredients": []any{}},
	},
	Categories: {
		required: []string{"name"},
		bools:    []string{"isActive"},
		search:   []string{"name", "slug", "description"},
		defaults: map[string]any{"isActive": true},
	},
	Orders: {
		required: []string{"items"},
		numbers:  []string{"totalAmount"},
		search:   []string{"orderNumber", "user.name", "user.email"},
		enums:    map[string][]string{"status": OrderStatuses, "paymentStatus": PaymentStatuses},
		defaults: map[string]any{"status": "pending", "paymentStatus": "pending", "paymentMethod": "cod"},
	},
	Customers: {
		required: []string{"name", "email"},
		numbers:  []string{"ordersCount"},
		bools:    []string{"isActive"},
		search:   []string{"name", "email", "phone"},
		defaults: map[string]any{"isActive": true, "ordersCount": 0.0, "role": "customer"},
	},
	Banners: {
		required: []string{"title"},
		numbers:  []string{"position"},
		bools:    []string{"isActive"},
		search:   []string{"title", "subtitle"},
		defaults: map[string]any{"isActive": true, "position": 0.0},
	},
}

func (r rules) check(rec Record, partial bool) error {
	if !partial {
		for _, f := range r.required {
			if blank(rec[f]) {
				return invalid(humanize(f) + " is required")
			}
		}
	}
	for _, f := range r.numbers {
		v, ok := rec[f]
		if !ok || v == nil {
			continue
		}
		n, isNum := v.(float64)
		if !isNum {
			return invalid(humanize(f) + " must be a number")
		}
		if n < 0 {
			return invalid(humanize(f) + " must not be negative")
		}
	}
	for _, f := range r.bools {
		if v, ok := rec[f]; ok && v != nil {
			if _, isBool := v.(bool); !isBool {
				return invalid(humanize(f) + " must be true or false")
			}
		}
	}
	for f, allowed := range r.enums {
		v, ok := rec[f]
		if !ok {
			continue
		}
		if s, isString := v.(string); !isString || !slices.Contains(allowed, s) {
			return invalid(fmt.Sprintf("%s must be one of %s", humanize(f), strings.Join(allowed, ", ")))
		}
	}
	return nil
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	}
	return false
}

// humanize turns "originalPrice" into "Original price".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// slugify derives a category slug from its name.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
