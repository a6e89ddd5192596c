// Package ledger реализует движок платёжного календаря участников:
// генерацию календаря платёжных месяцев, классификацию каждого месяца
// (оплачен / не оплачен / заморожен), агрегацию задолженности и
// применение мутаций оплаты. Все функции чистые: результат зависит
// только от аргументов, пакет не знает о хранилище и транспорте.
package ledger

import (
	"time"

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

const (
	// KeyLayout — формат ключа платёжного месяца, YYYY-MM.
	KeyLayout = "2006-01"
	// DateLayout — формат дат в документе участника, YYYY-MM-DD.
	DateLayout = "2006-01-02"
)

// ParseDate парсит дату формата YYYY-MM-DD. Непарсящиеся и пустые строки
// не являются ошибкой: документ разреженный, поэтому возвращается ok=false,
// а вызывающая сторона применяет цепочку fallback-значений.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthKey возвращает ключ месяца YYYY-MM для заданной даты.
func MonthKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseMonthKey парсит ключ месяца YYYY-MM.
func ParseMonthKey(key string) (time.Time, bool) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddMonths сдвигает ключ месяца на n календарных месяцев вперёд.
// Для невалидного ключа возвращает его без изменений.
func AddMonths(key string, n int) string {
	t, ok := ParseMonthKey(key)
	if !ok {
		return key
	}
	return MonthKey(t.AddDate(0, n, 0))
}

// firstDayOfNextMonth возвращает первое число месяца, следующего за датой.
func firstDayOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// Months перечисляет ключи YYYY-MM от start до end включительно,
// сравнение идёт по календарному месяцу. Если start позже end,
// возвращается пустой срез.
func Months(start, end time.Time) []string {
	y, m := start.Year(), int(start.Month())
	ey, em := end.Year(), int(end.Month())
	var out []string
	for y < ey || (y == ey && m <= em) {
		out = append(out, time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format(KeyLayout))
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return out
}

// anchorDate возвращает якорную дату платёжного календаря участника:
// membership_start_date, затем join_date, затем now — первая распарсившаяся.
func anchorDate(m models.Member, now time.Time) time.Time {
	if t, ok := ParseDate(m.MembershipStartDate); ok {
		return t
	}
	if t, ok := ParseDate(m.JoinDate); ok {
		return t
	}
	return now
}

// rangeStart возвращает начало диапазона платёжных месяцев: первое число
// месяца, следующего за якорным. Сам якорный месяц считается покрытым
// платежом при записи и в календарь не входит.
func rangeStart(m models.Member, now time.Time) time.Time {
	return firstDayOfNextMonth(anchorDate(m, now))
}

// rangeEnd возвращает конец диапазона: дату окончания абонемента,
// если она в прошлом, иначе now.
func rangeEnd(m models.Member, now time.Time) time.Time {
	if end, ok := ParseDate(m.MembershipEndDate); ok && end.Before(now) {
		return end
	}
	return now
}

// Calendar генерирует полный календарь платёжных месяцев участника:
// каждый ключ YYYY-MM от месяца, следующего за якорным, до min(now, дата
// окончания абонемента) включительно. Пустой срез — участник зарегистрирован
// в текущем месяце либо абонемент закончился до первого платёжного месяца.
func Calendar(m models.Member, now time.Time) []string {
	return Months(rangeStart(m, now), rangeEnd(m, now))
}

// FirstLiabilityKey возвращает первый платёжный месяц участника — ключ,
// с которого начинается календарь. Месяц может лежать в будущем,
// если участник зарегистрирован в текущем месяце.
func FirstLiabilityKey(m models.Member, now time.Time) string {
	return MonthKey(rangeStart(m, now))
}
