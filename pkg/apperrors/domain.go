package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для общих ошибок
бизнес-логики алертинга.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется и когда ресурс отсутствует, и когда алерт
// просто невидим для пользователя: ответ идентичен, чтобы
// не раскрывать существование чужих scoped-алертов.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// --- Alerts ---

// ErrVisibilityTargetRequired - Team/User алерт без target_id.
var ErrVisibilityTargetRequired = New(
	CodeValidationFailed,
	"alert",
	"target_id is required for Team and User visibility",
	http.StatusBadRequest,
)

// ErrVisibilityTargetForbidden - Organization алерт с target_id.
var ErrVisibilityTargetForbidden = New(
	CodeValidationFailed,
	"alert",
	"target_id must be empty for Organization visibility",
	http.StatusBadRequest,
)

// ErrVisibilityTargetMissing - target_id не ссылается на существующую команду/пользователя.
var ErrVisibilityTargetMissing = New(
	CodeValidationFailed,
	"alert",
	"visibility target does not exist",
	http.StatusBadRequest,
)

// --- Directory ---

// ErrEmailTaken - email пользователя уже занят.
var ErrEmailTaken = New(
	CodeConflict,
	"user",
	"A user with this email already exists",
	http.StatusConflict,
)

// ErrTeamNameTaken - имя команды уже занято.
var ErrTeamNameTaken = New(
	CodeConflict,
	"team",
	"A team with this name already exists",
	http.StatusConflict,
)
