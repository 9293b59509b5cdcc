package model

import "time"

type StockMovement struct {
	ID             string     `db:"id" json:"id"`
	StoreID        string     `db:"store_id" json:"store_id"`
	ProductID      string     `db:"product_id" json:"product_id"`
	BatchID        *string    `db:"batch_id" json:"batch_id"`
	MovementType   string     `db:"movement_type" json:"movement_type"` // 'restock', 'adjustment', 'sale'
	QuantityChange float64    `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64    `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64    `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string    `db:"reference_type" json:"reference_type"`
	ReferenceID    *string    `db:"reference_id" json:"reference_id"`
	Notes          string     `db:"notes" json:"notes"`
	CreatedBy      *string    `db:"created_by" json:"created_by"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
