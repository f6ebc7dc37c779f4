package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE;"`
}

type CartItem struct {
	CartID    uuid.UUID `gorm:"primaryKey;"`
	ProductID uint      `gorm:"primaryKey;"`
	Quantity  int       `gorm:"not null"`
	Product   Product
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
