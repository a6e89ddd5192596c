package models

// DueSummary — производный агрегат задолженности одного участника.
// Никогда не сохраняется в хранилище: пересчитывается на каждое чтение
// из разреженных карт Member.
type DueSummary struct {
	MemberID             string   `json:"member_id"`
	RegNo                int      `json:"reg_no"`
	Name                 string   `json:"name"`
	Phone                string   `json:"phone"`
	Fee                  int      `json:"fee"`
	UnpaidMonths         []string `json:"unpaid_months"` // Неоплаченные месяцы, новые сверху
	UnpaidCount          int      `json:"unpaid_count"`
	DaysSinceFirstUnpaid int      `json:"days_since_first_unpaid"`
	Severity             string   `json:"severity"` // Current, Due, Overdue, Frozen
	TotalDue             int      `json:"total_due"`
}

// DueReminder — полезная нагрузка сообщения о задолженности участника,
// публикуемого планировщиком в очередь напоминаний.
type DueReminder struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	UnpaidCount      int    `json:"unpaid_count"`
	TotalDue         int    `json:"total_due"`
	FirstUnpaidMonth string `json:"first_unpaid_month"`
}
