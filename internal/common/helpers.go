// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: английская плюрализация, форматирование баллов и дат,
// подсчёт стажа для поздравлений с годовщиной.
package common

import (
	"fmt"
	"time"
)

// PluralizeKudos возвращает правильную форму слова «kudo» для числа n.
//
// Примеры:
//
//	PluralizeKudos(1) → "kudo"
//	PluralizeKudos(3) → "kudos"
func PluralizeKudos(n int) string {
	if n == 1 || n == -1 {
		return "kudo"
	}
	return "kudos"
}

// PluralizePoints возвращает правильную форму слова «point».
func PluralizePoints(n int) string {
	if n == 1 || n == -1 {
		return "point"
	}
	return "points"
}

// FormatPoints форматирует баллы в читабельную строку.
// Пример: FormatPoints(150) → "150 points", FormatPoints(1) → "1 point"
func FormatPoints(n int) string {
	return fmt.Sprintf("%d %s", n, PluralizePoints(n))
}

// FormatPointsDelta создаёт строку вида "+5 points" или "-50 points".
// Знак «+» добавляется автоматически для неотрицательных значений.
func FormatPointsDelta(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d %s", n, PluralizePoints(n))
	}
	return fmt.Sprintf("%d %s", n, PluralizePoints(n))
}

// FormatCalendarDay форматирует дату для поздравлений: "January 2".
// Год намеренно опускается — дни рождения и годовщины повторяются ежегодно.
func FormatCalendarDay(t time.Time) string {
	return t.Format("January 2")
}

// YearsOfService возвращает полные годы стажа на дату now.
// Если месяц/день найма в этом году ещё не наступили — год не засчитывается.
func YearsOfService(hireDate, now time.Time) int {
	years := now.Year() - hireDate.Year()

	nowMonthDay := int(now.Month())*100 + now.Day()
	hireMonthDay := int(hireDate.Month())*100 + hireDate.Day()
	if nowMonthDay < hireMonthDay {
		years--
	}

	if years < 0 {
		return 0
	}
	return years
}

// SameCalendarDay проверяет, совпадают ли месяц и день двух дат.
// Используется для поиска именинников (год игнорируется).
func SameCalendarDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// Truncate обрезает строку до max символов, добавляя многоточие.
// Нужно для логирования длинных сообщений kudos.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
