package model

import "time"

// Inventory — коллекция предметов одного владельца.
// IdSpec хранится как сырой JSON-документ (массив элементов формата customId),
// разбор выполняет пакет idspec. Seq — атомарный счётчик для SEQ-элементов.
type Inventory struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	OwnerID int64 `gorm:"not null;index"` // ссылка на users.id

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Title       string `gorm:"not null"`
	Description string

	IdSpec []byte `gorm:"type:text"` // JSON-массив элементов генерации customId
	Seq    int64  `gorm:"not null;default:0"`

	Version int64 `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
