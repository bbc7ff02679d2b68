package domain

import "time"

// Book is a catalog item as served by the marketplace API. The client treats
// it as read-only; ids and seller attribution are owned by the server.
type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	SellerID    int64   `json:"seller_id"`
}

// User is the authenticated identity. After login the API returns only a
// token, so most fields start out provisional until a real profile endpoint
// exists.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	College   string `json:"college,omitempty"`
	ContactNo string `json:"contact_no,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}

// CartLine is one cart entry: a catalog item plus a quantity.
type CartLine struct {
	ItemID    int64   `json:"itemId"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	UnitPrice float64 `json:"unitPrice"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortTitleAsc  SortKey = "title-asc"
)

// ParseSortKey maps a wire value to a SortKey. The legacy UI names
// (price-low, price-high, title) are accepted; anything unknown falls back
// to SortNewest.
func ParseSortKey(s string) SortKey {
	switch s {
	case string(SortPriceAsc), "price-low":
		return SortPriceAsc
	case string(SortPriceDesc), "price-high":
		return SortPriceDesc
	case string(SortTitleAsc), "title":
		return SortTitleAsc
	default:
		return SortNewest
	}
}

// FilterCriteria is the user's full catalog query. SearchText and Category
// select what gets fetched from the server; PriceMin/PriceMax and SortKey
// shape the fetched set locally.
type FilterCriteria struct {
	SearchText string
	Category   string
	PriceMin   float64
	PriceMax   float64
	SortKey    SortKey
}

type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is one transient user-feedback message.
type Notification struct {
	ID      string            `json:"id"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}
