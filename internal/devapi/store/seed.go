package store

import (
	"context"
	"fmt"
)

// Seed fills the store with a small demo catalogue.
func Seed(ctx context.Context, m *Memory) error {
	categories := []Record{
		{"name": "Pain Relief", "description": "Analgesics and anti-inflammatories"},
		{"name": "Vitamins & Supplements"},
		{"name": "Personal Care", "isActive": false},
	}
	for _, c := range categories {
		if _, err := m.Create(ctx, Categories, c); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	products := []Record{
		{
			"name": "Paracetamol 500mg", "brand": "Calpol", "category": "Pain Relief",
			"price": 30.0, "originalPrice": 35.0, "stock": 120.0, "dosage": "1 tablet every 6 hours",
			"weight": map[string]any{"value": 15.0, "unit": "tablets"},
			"tags":   []any{"fever", "pain"}, "ingredients": []any{"paracetamol"},
		},
		{
			"name": "Ibuprofen 400mg", "brand": "Brufen", "category": "Pain Relief",
			"price": 45.5, "stock": 8.0, "requiresPrescription": true,
			"weight": map[string]any{"value": 10.0, "unit": "tablets"},
		},
		{
			"name": "Vitamin C 1000mg", "brand": "Limcee", "category": "Vitamins & Supplements",
			"price": 120.0, "stock": 40.0, "isFeatured": true,
			"weight": map[string]any{"value": 60.0, "unit": "tablets"},
		},
	}
	for _, p := range products {
		if _, err := m.Create(ctx, Products, p); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}

	customer, err := m.Create(ctx, Customers, Record{"name": "Asha Rao", "email": "asha@example.com", "phone": "+91 98450 00000", "ordersCount": 1.0})
	if err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	order := Record{
		"user":  map[string]any{"_id": customer["_id"], "name": customer["name"], "email": customer["email"]},
		"items": []any{map[string]any{"name": "Paracetamol 500mg", "quantity": 2.0, "price": 30.0}},
		"shippingAddress": map[string]any{
			"street": "12 MG Road", "city": "Bengaluru", "state": "KA", "pincode": "560001", "phone": "+91 98450 00000",
		},
	}
	if _, err := m.Create(ctx, Orders, order); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	if _, err := m.Create(ctx, Banners, Record{"title": "Monsoon care", "subtitle": "Up to 20% off", "link": "/products?category=Pain%20Relief", "position": 1.0}); err != nil {
		return fmt.Errorf("seed banners: %w", err)
	}
	return nil
}
