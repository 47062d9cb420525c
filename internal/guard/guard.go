// Package guard — допуск изменяющих запросов по оптимистическим версиям.
// Клиент объявляет версию записи, которую он редактировал; расхождение с
// актуальной версией означает, что запись менял кто-то ещё, и запрос
// отклоняется с конфликтом вместо тихой потери чужого изменения.
package guard

import (
	"errors"
	"net/http"
	"strconv"
)

// VersionHeader — заголовок, в котором клиент объявляет версию и в котором
// сервер возвращает версию после успешного изменения.
const VersionHeader = "X-Version"

// ErrVersionConflict возвращается при расхождении версий. Обработчики
// транслируют его в 409, отличая от "не найдено" и ошибок валидации.
var ErrVersionConflict = errors.New("version conflict")

// VersionFromRequest извлекает клиентскую версию: заголовок X-Version —
// основной канал, поле тела — запасной; при обоих каналах побеждает заголовок.
// Неразборчивое значение считается отсутствующим.
func VersionFromRequest(r *http.Request, bodyVersion *int64) *int64 {
	if h := r.Header.Get(VersionHeader); h != "" {
		if v, err := strconv.ParseInt(h, 10, 64); err == nil {
			return &v
		}
	}
	return bodyVersion
}

// Admit решает, допускать ли изменяющий запрос.
//
// Мягкий режим (strict=false): без клиентской версии или без актуальной
// (запись неизвестна) запрос допускается — сравнивать нечего, деградация
// осознанная. Строгий режим требует клиентскую версию всегда; отсутствие
// актуальной версии допускает и там (судьбу несуществующей записи решает
// сама мутация, вернув "не найдено").
//
// Сама проверка здесь только отсекает заведомо устаревших клиентов раньше и
// дешевле; гонку двух одновременных запросов закрывает условный UPDATE
// в репозитории (version = version + 1 WHERE ... AND version = ?).
func Admit(client, current *int64, strict bool) error {
	if client == nil {
		if strict && current != nil {
			return ErrVersionConflict
		}
		return nil
	}
	if current == nil {
		return nil
	}
	if *client != *current {
		return ErrVersionConflict
	}
	return nil
}
