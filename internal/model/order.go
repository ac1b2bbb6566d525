package model

import "time"

// Order status values used by both sellers and buyers.
const (
	OrderPlaced    = "PLACED"
	OrderConfirmed = "CONFIRMED"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// Order is a purchase joining one buyer and one seller.
type Order struct {
	ID          int64      `json:"id"`
	TotalAmount float64    `json:"totalAmount"`
	Status      string     `json:"status"`
	OrderDate   time.Time  `json:"orderDate"`
	BuyerID     int64      `json:"buyerId"`
	BuyerName   string     `json:"buyerName,omitempty"`
	SellerID    int64      `json:"sellerId"`
	SellerName  string     `json:"sellerName,omitempty"`
	Items       []CartItem `json:"items,omitempty"`
}

// SellerStats is the seller dashboard summary.
type SellerStats struct {
	TotalProducts int     `json:"totalProducts"`
	PendingOrders int     `json:"pendingOrders"`
	TotalOrders   int     `json:"totalOrders"`
	TotalSales    float64 `json:"totalSales"`
}

// SellerAnalytics is the periodized sales report for a seller.
type SellerAnalytics struct {
	Period        string             `json:"period"`
	TotalSales    float64            `json:"totalSales"`
	TotalOrders   int                `json:"totalOrders"`
	TopProducts   []Product          `json:"topProducts,omitempty"`
	SalesByPeriod map[string]float64 `json:"salesByPeriod,omitempty"`
}
