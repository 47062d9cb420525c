package model

import "time"

// Item — предмет инвентаря. CustomID генерируется по IdSpec инвентаря
// при создании; Version растёт на 1 при каждом принятом обновлении.
type Item struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	InventoryID int64 `gorm:"not null;index"`

	// Связи
	Inventory *Inventory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Уникальность только в меру энтропии спецификации, глобальная не гарантируется.
	CustomID string `gorm:"not null;index"`

	Version int64 `gorm:"not null;default:1"`

	Values []ItemValue `gorm:"foreignKey:ItemID"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
