package models

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	// Stored verbatim and compared with plain equality. Any deployment beyond
	// the reference behavior must replace this with a salted hash.
	Password string `gorm:"not null" json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Description string  `json:"description"`
}

// CartItem carries no quantity: adding the same product twice yields two rows.
type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint `gorm:"index;not null"           json:"user_id"`
	ProductID uint `gorm:"not null"                 json:"product_id"`
}

type Session struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string `gorm:"unique;not null"          json:"token"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	CreatedAt int64  `gorm:"not null"                 json:"created_at"`
}
