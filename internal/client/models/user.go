package models

import "time"

// Identity is the signed-in administrator as reported by the API.
type Identity struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type Customer struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"isActive"`
	Orders    int       `json:"ordersCount"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// LoginResult is the payload of a successful sign-in.
type LoginResult struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// DashboardStats feeds the overview panel.
type DashboardStats struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalOrders    int     `json:"totalOrders"`
	TotalCustomers int     `json:"totalCustomers"`
	PendingOrders  int     `json:"pendingOrders"`
	Revenue        float64 `json:"revenue"`
	LowStock       int     `json:"lowStock"`
}
