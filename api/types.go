// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

// Timestamps from the server are ISO-8601 strings without a timezone
// (Python isoformat). They are display data for this client, so they
// stay strings end to end rather than round-tripping through time.Time
// with a lossy layout guess.

// User is the read-only projection of an account as returned by
// /auth/me and the admin user listing. The login response embeds a
// reduced copy (no is_active, created_at, last_login).
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

// HealthStatus is the response of the unauthenticated health probe.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token string `json:"access_token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Pagination describes the position of a listing page within the full
// result set.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// Category groups inventory items. ProductCount is computed
// server-side.
type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"product_count"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// VendorLink associates an inventory item with a vendor that supplies
// it, at a given unit price.
type VendorLink struct {
	VendorID    int     `json:"vendor_id"`
	VendorName  string  `json:"vendor_name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	IsPreferred bool    `json:"is_preferred"`
}

// InventoryItem is a stocked product. Status is derived server-side
// from quantity against MinStockLevel: "In Stock", "Low Stock",
// "Out of Stock", or "Inactive".
type InventoryItem struct {
	ID            int          `json:"id,omitempty"`
	Name          string       `json:"name"`
	CategoryID    int          `json:"category_id,omitempty"`
	Category      string       `json:"category,omitempty"`
	Quantity      int          `json:"quantity"`
	Price         float64      `json:"price"`
	Description   string       `json:"description,omitempty"`
	SKU           string       `json:"sku,omitempty"`
	MinStockLevel int          `json:"min_stock_level,omitempty"`
	IsActive      bool         `json:"is_active,omitempty"`
	Status        string       `json:"status,omitempty"`
	Vendors       []VendorLink `json:"vendors,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	UpdatedAt     string       `json:"updated_at,omitempty"`
}

// OrderItem is one line of a customer order.
type OrderItem struct {
	ID          int     `json:"id,omitempty"`
	OrderID     int     `json:"order_id,omitempty"`
	InventoryID int     `json:"inventory_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	TotalPrice  float64 `json:"total_price,omitempty"`
}

// Order is a customer order with its line items.
type Order struct {
	ID            int         `json:"id,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Status        string      `json:"status,omitempty"`
	Total         float64     `json:"total,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	ItemCount     int         `json:"item_count,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
}

// Vendor is a supplier.
type Vendor struct {
	ID            int    `json:"id,omitempty"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	IsActive      bool   `json:"is_active,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Purchase order statuses as stored by the server.
const (
	POStatusDraft     = "draft"
	POStatusSubmitted = "submitted"
	POStatusApproved  = "approved"
	POStatusReceived  = "received"
	POStatusCanceled  = "canceled"
)

// PurchaseOrderItem is one line of a purchase order.
// ReceivedQuantity tracks partial receipt.
type PurchaseOrderItem struct {
	ID               int     `json:"id,omitempty"`
	PurchaseOrderID  int     `json:"purchase_order_id,omitempty"`
	InventoryID      int     `json:"inventory_id"`
	ProductName      string  `json:"product_name,omitempty"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	TotalPrice       float64 `json:"total_price,omitempty"`
	ReceivedQuantity int     `json:"received_quantity,omitempty"`
}

// PurchaseOrder is a replenishment order placed with a vendor.
type PurchaseOrder struct {
	ID                   int                 `json:"id,omitempty"`
	VendorID             int                 `json:"vendor_id"`
	VendorName           string              `json:"vendor_name,omitempty"`
	ReferenceNumber      string              `json:"reference_number,omitempty"`
	Status               string              `json:"status,omitempty"`
	Total                float64             `json:"total,omitempty"`
	Notes                string              `json:"notes,omitempty"`
	CreatedBy            int                 `json:"created_by,omitempty"`
	CreatorName          string              `json:"creator_name,omitempty"`
	Items                []PurchaseOrderItem `json:"items,omitempty"`
	ItemCount            int                 `json:"item_count,omitempty"`
	ExpectedDeliveryDate string              `json:"expected_delivery_date,omitempty"`
	ReceivedDate         string              `json:"received_date,omitempty"`
	CreatedAt            string              `json:"created_at,omitempty"`
	UpdatedAt            string              `json:"updated_at,omitempty"`
}

// AuditLog is one entry of the server's action trail.
type AuditLog struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id,omitempty"`
	Action    string `json:"action"`
	TableName string `json:"table_name,omitempty"`
	RecordID  int    `json:"record_id,omitempty"`
	OldValues string `json:"old_values,omitempty"`
	NewValues string `json:"new_values,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SystemStats is the admin system overview.
type SystemStats struct {
	TotalUsers      int     `json:"total_users,omitempty"`
	TotalCategories int     `json:"total_categories,omitempty"`
	TotalProducts   int     `json:"total_products,omitempty"`
	TotalOrders     int     `json:"total_orders,omitempty"`
	LowStockItems   int     `json:"low_stock_items,omitempty"`
	InventoryValue  float64 `json:"inventory_value,omitempty"`
	RecentOrders    []Order `json:"recent_orders,omitempty"`
}

// CategoryValue is one slice of the inventory value breakdown.
type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// InventoryValue is the analytics valuation report.
type InventoryValue struct {
	TotalValue        float64         `json:"total_value"`
	CategoryBreakdown []CategoryValue `json:"category_breakdown"`
}
