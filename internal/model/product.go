package model

import "time"

// Product is a catalog item listed by a seller.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Category    string  `json:"category" db:"category"`
	Price       float64 `json:"price" db:"price"`
	Stock       int     `json:"stock" db:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty" db:"image_url"`
	Featured    bool    `json:"featured" db:"featured"`
	SellerID    int64   `json:"sellerId" db:"seller_id"`
	SellerName  string  `json:"sellerName,omitempty" db:"seller_name"`
}

// Review is a buyer's rating of a product.
type Review struct {
	ID         int64     `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	ReviewDate time.Time `json:"reviewDate"`
	BuyerName  string    `json:"buyerName"`
	ProductID  int64     `json:"productId"`
}

// CartItem is a product plus quantity in a buyer's cart.
type CartItem struct {
	ID       int64   `json:"id" db:"id"`
	Quantity int     `json:"quantity" db:"quantity"`
	Product  Product `json:"product"`
}

// WishlistItem is a saved product in a buyer's wishlist.
type WishlistItem struct {
	ID      int64   `json:"id" db:"id"`
	Product Product `json:"product"`
}
