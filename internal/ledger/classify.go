package ledger

import "github.com/magabrotheeeer/membership-ledger/internal/models"

// State — состояние одного платёжного месяца участника.
type State int

const (
	// StateUnpaid — месяц не оплачен.
	StateUnpaid State = iota
	// StatePaid — месяц оплачен.
	StatePaid
	// StateFrozen — месяц заморожен и исключён из задолженности.
	StateFrozen
)

func (s State) String() string {
	switch s {
	case StatePaid:
		return "paid"
	case StateFrozen:
		return "frozen"
	default:
		return "unpaid"
	}
}

// Classify определяет состояние месяца key по данным участника.
// Приоритет правил строгий:
//  1. месяц в списке замороженных — StateFrozen, любая отметка оплаты игнорируется;
//  2. явная отметка в карте Payments — StatePaid при true, StateUnpaid при false;
//  3. первый платёжный месяц календаря при плановом статусе "Paid" —
//     неявно StatePaid (оплата при регистрации покрывает его);
//  4. иначе StateUnpaid.
//
// Явный false всегда сильнее неявной оплаты, а заморозка сильнее всего.
func Classify(key string, m models.Member, first bool) State {
	return classify(key, m, first, frozenSet(m))
}

func classify(key string, m models.Member, first bool, frozen map[string]struct{}) State {
	if _, ok := frozen[key]; ok {
		return StateFrozen
	}
	if paid, ok := m.Payments[key]; ok {
		if paid {
			return StatePaid
		}
		return StateUnpaid
	}
	if first && m.PaymentStatus == "Paid" {
		return StatePaid
	}
	return StateUnpaid
}

func frozenSet(m models.Member) map[string]struct{} {
	set := make(map[string]struct{}, len(m.FrozenMonths))
	for _, key := range m.FrozenMonths {
		set[key] = struct{}{}
	}
	return set
}
