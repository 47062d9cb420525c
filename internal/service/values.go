package service

import (
	"InventoryKeeper/internal/model"
	"strconv"
)

// coerceValue приводит сырое значение (из распарсенного JSON) к слоту,
// соответствующему типу поля. Несоответствующие слоты остаются nil и
// затирают в БД данные прежнего типа при Upsert.
func coerceValue(kind string, raw any) model.ItemValue {
	var v model.ItemValue
	switch kind {
	case model.FieldKindText:
		v.StringValue = toString(raw)
	case model.FieldKindTextarea:
		v.TextValue = toString(raw)
	case model.FieldKindNumber:
		v.NumericValue = toNumber(raw)
	case model.FieldKindLink:
		v.LinkValue = toString(raw)
	case model.FieldKindBoolean:
		b := toBool(raw)
		v.BoolValue = &b
	}
	return v
}

func toString(raw any) *string {
	if raw == nil {
		return nil
	}
	var s string
	switch val := raw.(type) {
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	default:
		return nil
	}
	return &s
}

// toNumber: nil и пустая строка дают NULL, а не ноль;
// неразборчивая строка тоже NULL.
func toNumber(raw any) *float64 {
	switch val := raw.(type) {
	case float64:
		return &val
	case string:
		if val == "" {
			return nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil
		}
		return &f
	case bool:
		f := 0.0
		if val {
			f = 1.0
		}
		return &f
	default:
		return nil
	}
}

// toBool — приведение по "истинности": непустая строка, ненулевое число,
// bool как есть; nil и всё прочее — false.
func toBool(raw any) bool {
	switch val := raw.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return false
	}
}
