package ledger

import (
	"sort"
	"time"

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// Severity — уровень задолженности участника в целом. Не путать с
// заморозкой отдельного месяца (StateFrozen): здесь "Frozen" — это
// корзина наибольшей просрочки, имя сохранено для совместимости
// с витриной.
type Severity int

const (
	// SeverityCurrent — задолженности нет.
	SeverityCurrent Severity = iota
	// SeverityDue — от одного неоплаченного месяца.
	SeverityDue
	// SeverityOverdue — от трёх неоплаченных месяцев.
	SeverityOverdue
	// SeverityFrozen — от четырёх неоплаченных месяцев.
	SeverityFrozen
)

func (s Severity) String() string {
	switch s {
	case SeverityFrozen:
		return "Frozen"
	case SeverityOverdue:
		return "Overdue"
	case SeverityDue:
		return "Due"
	default:
		return "Current"
	}
}

// Rank возвращает порядок сортировки: чем серьёзнее просрочка, тем меньше ранг.
func (s Severity) Rank() int {
	return int(SeverityFrozen) - int(s)
}

// severityFor определяет уровень задолженности по числу неоплаченных месяцев.
func severityFor(unpaidCount int) Severity {
	switch {
	case unpaidCount >= 4:
		return SeverityFrozen
	case unpaidCount >= 3:
		return SeverityOverdue
	case unpaidCount >= 1:
		return SeverityDue
	default:
		return SeverityCurrent
	}
}

// Aggregate сворачивает календарь участника в сводку задолженности:
// классифицирует каждый месяц, собирает неоплаченные, считает дни с
// первого неоплаченного месяца (либо с начала диапазона, если долга нет)
// и сумму долга по стандартной ставке.
func Aggregate(m models.Member, now time.Time) models.DueSummary {
	calendar := Calendar(m, now)
	frozen := frozenSet(m)

	var unpaidAsc []string
	for i, key := range calendar {
		if classify(key, m, i == 0, frozen) == StateUnpaid {
			unpaidAsc = append(unpaidAsc, key)
		}
	}
	sort.Strings(unpaidAsc)

	unpaidDesc := make([]string, len(unpaidAsc))
	for i, key := range unpaidAsc {
		unpaidDesc[len(unpaidAsc)-1-i] = key
	}

	days := 0
	if len(unpaidAsc) > 0 {
		if first, ok := ParseMonthKey(unpaidAsc[0]); ok {
			days = daysBetween(first, now)
		}
	} else {
		days = daysBetween(rangeStart(m, now), now)
	}

	severity := severityFor(len(unpaidAsc))
	return models.DueSummary{
		MemberID:             m.ID,
		RegNo:                m.RegNo,
		Name:                 m.Name,
		Phone:                m.Phone,
		Fee:                  m.Fee,
		UnpaidMonths:         unpaidDesc,
		UnpaidCount:          len(unpaidAsc),
		DaysSinceFirstUnpaid: days,
		Severity:             severity.String(),
		TotalDue:             len(unpaidAsc) * m.Fee,
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// RankDueList устойчиво сортирует сводки: сначала по уровню задолженности
// (самые просроченные первыми), затем по числу дней с первого неоплаченного
// месяца по убыванию.
func RankDueList(list []models.DueSummary) {
	rank := map[string]int{
		SeverityFrozen.String():  SeverityFrozen.Rank(),
		SeverityOverdue.String(): SeverityOverdue.Rank(),
		SeverityDue.String():     SeverityDue.Rank(),
		SeverityCurrent.String(): SeverityCurrent.Rank(),
	}
	sort.SliceStable(list, func(i, j int) bool {
		if rank[list[i].Severity] != rank[list[j].Severity] {
			return rank[list[i].Severity] < rank[list[j].Severity]
		}
		return list[i].DaysSinceFirstUnpaid > list[j].DaysSinceFirstUnpaid
	})
}

// Revenue суммирует собранные платежи всех участников за месяц key:
// зафиксированная сумма платежа, если месяц классифицирован как оплаченный,
// иначе стандартная ставка участника. Неявная оплата первого месяца здесь
// не применяется — выручка считается только по явным отметкам, а замороженные
// месяцы дают ноль независимо от отметки.
func Revenue(members []models.Member, key string) int {
	total := 0
	for _, m := range members {
		if Classify(key, m, false) != StatePaid {
			continue
		}
		if amount, ok := m.PaymentsAmounts[key]; ok {
			total += amount
			continue
		}
		total += m.Fee
	}
	return total
}
