package model

// ItemValue — значение одного пользовательского поля у одного предмета.
// Заполнен ровно один слот (какой — решает Kind поля на момент записи),
// остальные явно NULL. Запись перезаписывает все слоты, чтобы
// значение прежнего типа не оставалось после смены Kind.
type ItemValue struct {
	ItemID  int64 `gorm:"primaryKey;autoIncrement:false"`
	FieldID int64 `gorm:"primaryKey;autoIncrement:false"`

	Item  *Item        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Field *CustomField `gorm:"foreignKey:FieldID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	StringValue  *string
	TextValue    *string
	NumericValue *float64
	LinkValue    *string
	BoolValue    *bool
}
