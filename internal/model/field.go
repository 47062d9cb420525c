package model

import "time"

// Типы пользовательских полей инвентаря.
const (
	FieldKindText     = "TEXT"
	FieldKindTextarea = "TEXTAREA"
	FieldKindNumber   = "NUMBER"
	FieldKindLink     = "LINK"
	FieldKindBoolean  = "BOOLEAN"
)

// MaxFieldsPerKind — ограничение схемы: не более 3 полей одного типа на инвентарь.
const MaxFieldsPerKind = 3

// CustomField — пользовательское поле схемы инвентаря.
type CustomField struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	InventoryID int64 `gorm:"not null;index"`

	Inventory *Inventory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Kind        string `gorm:"not null"` // одно из FieldKind*
	Name        string `gorm:"not null"`
	Position    int    `gorm:"not null;default:0"`
	ShowInTable bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidFieldKind проверяет, что kind известен схеме.
func ValidFieldKind(kind string) bool {
	switch kind {
	case FieldKindText, FieldKindTextarea, FieldKindNumber, FieldKindLink, FieldKindBoolean:
		return true
	}
	return false
}
