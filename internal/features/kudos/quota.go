// Package kudos — quota.go содержит календарную арифметику квотного окна.
//
// Квотное окно — календарный месяц, и оно ВСЕГДА считается в UTC.
// Фиксированный пояс делает границу месяца детерминированной независимо
// от региона деплоя и настройки APP_TIMEZONE (она влияет только на cron).
package kudos

import "time"

// MonthStartUTC возвращает первый момент календарного месяца (UTC),
// содержащего t. Kudo принадлежит окну [MonthStartUTC(t), NextMonthStartUTC(t)).
func MonthStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthStartUTC возвращает первый момент следующего календарного месяца (UTC).
// Это момент, когда квота отправителя обнуляется.
func NextMonthStartUTC(t time.Time) time.Time {
	return MonthStartUTC(t).AddDate(0, 1, 0)
}

// SameQuotaWindow проверяет, попадают ли два момента в одно квотное окно.
func SameQuotaWindow(a, b time.Time) bool {
	return MonthStartUTC(a).Equal(MonthStartUTC(b))
}
