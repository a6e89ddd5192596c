package ledger

import (
	"errors"
	"sort"
	"time"

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// Статусы, принимаемые мутатором оплаты.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
	StatusFrozen = "frozen"
)

// ErrFirstMonthLocked возвращается при попытке отметить первый платёжный
// месяц участника как unpaid или frozen: оплата при регистрации покрывает
// его всегда. Витрина и карточка участника исторически расходились в том,
// считать ли сам месяц регистрации платёжным; контракт движка — календарь
// начинается со следующего месяца, и защита действует на его первый ключ.
var ErrFirstMonthLocked = errors.New("first liability month cannot be marked unpaid or frozen")

// ErrUnknownStatus возвращается для статуса вне множества paid/unpaid/frozen.
var ErrUnknownStatus = errors.New("unknown payment status")

// ErrInvalidMonth возвращается для ключа месяца вне формата YYYY-MM.
var ErrInvalidMonth = errors.New("invalid month key")

// Update — одно обновление платёжного состояния участника.
// CoverMonths больше единицы означает авансовый платёж: сумма закрывает
// CoverMonths последовательных месяцев начиная с Month. Количество месяцев
// указывает вызывающая сторона явно, по сумме оно не угадывается.
type Update struct {
	Month       string
	Status      string
	Amount      *int
	CoverMonths int
}

// Apply применяет обновление к платёжным картам участника и возвращает
// новые карты для merge-записи. Исходный документ не изменяется; записи
// по не затронутым месяцам переносятся как есть. Применение идемпотентно:
// повторное обновление с теми же аргументами даёт тот же результат.
func Apply(m models.Member, upd Update, now time.Time) (models.PaymentFields, error) {
	if _, ok := ParseMonthKey(upd.Month); !ok {
		return models.PaymentFields{}, ErrInvalidMonth
	}

	if (upd.Status == StatusUnpaid || upd.Status == StatusFrozen) && upd.Month == FirstLiabilityKey(m, now) {
		return models.PaymentFields{}, ErrFirstMonthLocked
	}

	payments := make(map[string]bool, len(m.Payments)+1)
	for k, v := range m.Payments {
		payments[k] = v
	}
	amounts := make(map[string]int, len(m.PaymentsAmounts)+1)
	for k, v := range m.PaymentsAmounts {
		amounts[k] = v
	}
	frozen := frozenSet(m)

	switch upd.Status {
	case StatusPaid:
		cover := upd.CoverMonths
		if cover < 1 {
			cover = 1
		}
		for i := 0; i < cover; i++ {
			key := AddMonths(upd.Month, i)
			payments[key] = true
			delete(frozen, key)
			if upd.Amount != nil {
				amounts[key] = *upd.Amount / cover
			}
		}
	case StatusUnpaid:
		payments[upd.Month] = false
		delete(frozen, upd.Month)
		// Сумма на неоплаченном месяце — номинальная ставка, а не сбор.
		if upd.Amount != nil {
			amounts[upd.Month] = *upd.Amount
		}
	case StatusFrozen:
		// Замороженный месяц без явной отметки получает false,
		// чтобы карта дальше оставалась плотной.
		if _, ok := payments[upd.Month]; !ok {
			payments[upd.Month] = false
		}
		frozen[upd.Month] = struct{}{}
	default:
		return models.PaymentFields{}, ErrUnknownStatus
	}

	frozenMonths := make([]string, 0, len(frozen))
	for key := range frozen {
		frozenMonths = append(frozenMonths, key)
	}
	sort.Strings(frozenMonths)

	return models.PaymentFields{
		Payments:        payments,
		PaymentsAmounts: amounts,
		FrozenMonths:    frozenMonths,
	}, nil
}
