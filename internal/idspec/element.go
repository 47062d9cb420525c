// Package idspec реализует декларативную спецификацию генерации customId:
// упорядоченный список типизированных элементов, хранящийся как JSON-документ
// у инвентаря, и генератор, склеивающий отрисовку элементов по порядку.
package idspec

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Kind — дискриминатор варианта элемента. Набор закрыт: неизвестные типы
// отбрасываются на границе десериализации (Parse), внутрь генератора не попадают.
type Kind string

const (
	KindFixed    Kind = "FIXED"    // литеральный текст
	KindRandom20 Kind = "RANDOM20" // 3 случайных байта -> 6 hex-символов
	KindRand32   Kind = "RAND32"   // 4 случайных байта -> 8 hex-символов
	KindGUID     Kind = "GUID"     // канонический UUID
	KindDateTime Kind = "DATETIME" // текущее время по шаблону
	KindSeq      Kind = "SEQ"      // счётчик инвентаря, десятичный
)

// Element — один элемент спецификации. Значимость полей зависит от Kind.
type Element struct {
	Kind Kind

	Text string // FIXED

	Format string // DATETIME; пустой -> "yyyy"

	Prefix string // SEQ
	Width  int    // SEQ: ширина при Pad=true
	Pad    bool   // SEQ: дополнять нулями слева до Width
}

// rawElement — форма элемента в хранимом JSON.
type rawElement struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Format string `json:"format,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Width  int    `json:"width,omitempty"`
	Pad    bool   `json:"pad,omitempty"`
}

// Parse разбирает хранимый JSON-документ спецификации.
// Не-массив, пустой документ или мусор дают пустую спецификацию (не ошибку) —
// генератор в этом случае уходит в fallback. Элементы с неизвестным type
// пропускаются с записью в лог: так старый сервер переживает данные
// от более новой схемы.
func Parse(doc []byte, logger *zap.SugaredLogger) []Element {
	if len(doc) == 0 {
		return nil
	}
	var raws []rawElement
	if err := json.Unmarshal(doc, &raws); err != nil {
		if logger != nil {
			logger.Infow("idspec: document is not an element array, using fallback", "error", err)
		}
		return nil
	}

	elems := make([]Element, 0, len(raws))
	for _, r := range raws {
		switch r.Type {
		case "FIXED":
			elems = append(elems, Element{Kind: KindFixed, Text: r.Text})
		case "RANDOM20", "RANDOM_SHORT":
			elems = append(elems, Element{Kind: KindRandom20})
		case "RAND32", "RANDOM_LONG":
			elems = append(elems, Element{Kind: KindRand32})
		case "GUID":
			elems = append(elems, Element{Kind: KindGUID})
		case "DATETIME":
			elems = append(elems, Element{Kind: KindDateTime, Format: r.Format})
		case "SEQ", "SEQUENCE":
			elems = append(elems, Element{Kind: KindSeq, Prefix: r.Prefix, Width: r.Width, Pad: r.Pad})
		default:
			if logger != nil {
				logger.Infow("idspec: skipping element of unknown type", "type", r.Type)
			}
		}
	}
	return elems
}

// Marshal сериализует спецификацию обратно в хранимую JSON-форму.
// Используется при создании/обновлении инвентаря после валидации входа.
func Marshal(elems []Element) ([]byte, error) {
	raws := make([]rawElement, 0, len(elems))
	for _, e := range elems {
		raws = append(raws, rawElement{
			Type:   string(e.Kind),
			Text:   e.Text,
			Format: e.Format,
			Prefix: e.Prefix,
			Width:  e.Width,
			Pad:    e.Pad,
		})
	}
	return json.Marshal(raws)
}
