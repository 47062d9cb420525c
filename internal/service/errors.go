package service

import "errors"

// Ошибки уровня сервисов. Обработчики транслируют их в HTTP-статусы;
// конфликт версий живёт отдельно в guard.ErrVersionConflict.
var (
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrNotFound           = errors.New("not found")
	ErrInvalidFieldKind   = errors.New("invalid field kind")
	ErrFieldLimit         = errors.New("field limit per kind reached")
)
