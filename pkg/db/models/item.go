package models

import "time"

// Item is a stock-tracked good or service rate card entry. CurrentStock is
// kept non-negative by clamping in the stock adjuster, never by rejecting
// the mutation that would overdraw it.
type Item struct {
	ID            uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string   `gorm:"column:name;not null;uniqueIndex" json:"name"`
	HSNSac        *string  `gorm:"column:hsn_sac" json:"hsnSac"`
	Unit          string   `gorm:"column:unit;not null" json:"unit"`
	PurchaseRate  float64  `gorm:"column:purchase_rate;not null;default:0" json:"purchaseRate"`
	SaleRate      float64  `gorm:"column:sale_rate;not null" json:"saleRate"`
	TaxRate       float64  `gorm:"column:tax_rate;not null;default:18" json:"taxRate"`
	CurrentStock  float64  `gorm:"column:current_stock;not null;default:0" json:"currentStock"`
	LowStockAlert *float64 `gorm:"column:low_stock_alert" json:"lowStockAlert"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
