package models

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
)

type Product struct {
	ID       string `gorm:"primaryKey"            json:"id"`
	Name     string `gorm:"not null"              json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Stock    int    `gorm:"not null"              json:"stock"`
	Image    string `json:"image"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

// Order keeps its line items serialized into a single text column; Items is
// filled in by the repo on read and is never stored directly.
type Order struct {
	OrderID   string      `gorm:"primaryKey;column:order_id" json:"orderId"`
	OrderDate string      `gorm:"not null"                   json:"orderDate"`
	ItemsJSON string      `gorm:"column:items;not null"      json:"-"`
	Status    string      `gorm:"not null;index"             json:"status"`
	Items     []OrderItem `gorm:"-"                          json:"items"`
}

type OrderItem struct {
	ProductID string  `json:"id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}
