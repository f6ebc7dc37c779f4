package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"uniqueIndex;not null"`
	Description string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Images      []ProductImage  `gorm:"constraint:OnDelete:CASCADE;"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProductID uint   `gorm:"index;not null"`
	URL       string `gorm:"not null"`
	Position  int
}

type ProductList []Product
