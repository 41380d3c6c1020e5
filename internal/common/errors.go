// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют HTTP-обработчикам различать типы проблем
// и возвращать клиенту понятный статус и сообщение.
package common

import "errors"

// Ошибки kudos (квота, валидация, расчёт)
var (
	// ErrQuotaExceeded — месячный лимит kudos исчерпан
	ErrQuotaExceeded = errors.New("monthly kudos limit reached")
	// ErrSelfKudo — попытка отправить kudo самому себе
	ErrSelfKudo = errors.New("you cannot send a kudo to yourself")
	// ErrEmptyMessage — пустое сообщение kudo
	ErrEmptyMessage = errors.New("kudo message must not be empty")
	// ErrUnknownBadge — бейдж вне фиксированного словаря
	ErrUnknownBadge = errors.New("unknown badge")
	// ErrUnknownSender — отправитель не найден в базе сотрудников
	ErrUnknownSender = errors.New("sender is not a registered employee")
	// ErrKudoNotFound — kudo не найден
	ErrKudoNotFound = errors.New("kudo not found")
	// ErrSettlementConflict — расчёт не прошёл из-за конкуренции транзакций
	// (все повторы исчерпаны); kudo НЕ считается отправленным
	ErrSettlementConflict = errors.New("settlement could not complete, try again")
)

// Ошибки сотрудников
var (
	// ErrEmployeeNotFound — сотрудник не найден в базе
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeExists — сотрудник с таким email уже зарегистрирован
	ErrEmployeeExists = errors.New("employee with this email already exists")
)

// Ошибки магазина наград
var (
	// ErrInsufficientPoints — не хватает баллов для награды
	ErrInsufficientPoints = errors.New("not enough points for this reward")
	// ErrRewardNotFound — награда не найдена или отключена
	ErrRewardNotFound = errors.New("reward not found")
)

// Ошибки админки
var (
	// ErrNotAdmin — у сотрудника нет роли администратора
	ErrNotAdmin = errors.New("admin role required")
	// ErrWrongPassword — неверный пароль администратора
	ErrWrongPassword = errors.New("wrong password")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("too many login attempts, wait an hour")
	// ErrSessionExpired — админ-сессия истекла или не существует
	ErrSessionExpired = errors.New("session expired, log in again")
)
