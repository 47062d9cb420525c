package idspec

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ширины случайных элементов в байтах (hex удваивает).
const (
	randShortBytes = 3 // RANDOM20 -> 6 hex-символов
	randLongBytes  = 4 // RAND32 -> 8 hex-символов
)

// fallbackPrefix используется при пустой/отсутствующей спецификации.
const fallbackPrefix = "ITEM-"

// SequenceSource выдаёт следующее значение счётчика инвентаря.
// Боевая реализация — атомарный инкремент inventories.seq в репозитории,
// поэтому одновременные создания не получают одинаковый номер.
type SequenceSource interface {
	Next(ctx context.Context, inventoryID int64) (int64, error)
}

// Generator отрисовывает customId по спецификации. Источники энтропии и
// времени вынесены в поля, чтобы тесты могли подставить детерминированные.
type Generator struct {
	Rand io.Reader        // по умолчанию crypto/rand.Reader
	Now  func() time.Time // по умолчанию time.Now

	seq    SequenceSource
	logger *zap.SugaredLogger
}

// NewGenerator создаёт генератор с боевыми источниками энтропии и времени.
func NewGenerator(seq SequenceSource, logger *zap.SugaredLogger) *Generator {
	return &Generator{
		Rand:   cryptorand.Reader,
		Now:    time.Now,
		seq:    seq,
		logger: logger,
	}
}

// Generate отрисовывает каждый элемент по порядку и склеивает без разделителя
// (разделители — явные FIXED-элементы). Пустая спецификация даёт fallback:
// фиксированный префикс плюс короткий случайный hex-суффикс.
// Ошибки возможны только от источника счётчика и источника энтропии.
func (g *Generator) Generate(ctx context.Context, inventoryID int64, spec []Element) (string, error) {
	if len(spec) == 0 {
		suffix, err := g.randomHex(randShortBytes)
		if err != nil {
			return "", err
		}
		return fallbackPrefix + suffix, nil
	}

	var b strings.Builder
	for _, el := range spec {
		switch el.Kind {
		case KindFixed:
			b.WriteString(el.Text)
		case KindRandom20:
			s, err := g.randomHex(randShortBytes)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case KindRand32:
			s, err := g.randomHex(randLongBytes)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case KindGUID:
			id, err := uuid.NewRandomFromReader(g.Rand)
			if err != nil {
				return "", fmt.Errorf("generating guid element: %w", err)
			}
			b.WriteString(id.String()) // канонический, строчные буквы
		case KindDateTime:
			b.WriteString(renderDateTime(el.Format, g.Now()))
		case KindSeq:
			n, err := g.seq.Next(ctx, inventoryID)
			if err != nil {
				return "", fmt.Errorf("advancing sequence for inventory %d: %w", inventoryID, err)
			}
			b.WriteString(renderSeq(el, n))
		default:
			// Сюда попадёт только элемент, собранный вручную мимо Parse.
			if g.logger != nil {
				g.logger.Infow("idspec: skipping element of unknown kind", "kind", el.Kind)
			}
		}
	}
	return b.String(), nil
}

// randomHex читает n байт энтропии и возвращает hex в верхнем регистре.
func (g *Generator) randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.Rand, buf); err != nil {
		return "", fmt.Errorf("reading %d random bytes: %w", n, err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// renderSeq — префикс (если задан) и десятичный номер;
// при Pad=true номер дополняется нулями слева до Width.
func renderSeq(el Element, n int64) string {
	num := strconv.FormatInt(n, 10)
	if el.Pad && el.Width > 0 {
		num = fmt.Sprintf("%0*d", el.Width, n)
	}
	return el.Prefix + num
}

// renderDateTime подставляет токены yyyy, MM, dd, HH, mm, ss (в этом порядке
// просмотра, без перекрытий); остальной текст шаблона проходит как есть.
// Пустой шаблон равносилен "yyyy".
func renderDateTime(format string, t time.Time) string {
	if format == "" {
		format = "yyyy"
	}
	r := strings.NewReplacer(
		"yyyy", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"dd", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	)
	return r.Replace(format)
}
