// Package models содержит доменные структуры абонемента участника,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Member представляет собой карточку участника — основную модель,
// используемую в бизнес-логике и хранилище. Документ разреженный:
// карта Payments не обязана содержать запись на каждый месяц,
// а даты хранятся строками формата YYYY-MM-DD и могут отсутствовать.
type Member struct {
	ID                  string          `json:"id"`                              // Уникальный идентификатор участника (UUID)
	RegNo               int             `json:"reg_no"`                          // Регистрационный номер
	Name                string          `json:"name"`                            // Имя участника
	Phone               string          `json:"phone"`                           // Телефон
	Email               string          `json:"email,omitempty"`                 // Электронная почта (опционально)
	JoinDate            string          `json:"join_date"`                       // Дата регистрации, YYYY-MM-DD
	MembershipType      string          `json:"membership_type"`                 // Тип абонемента: Monthly, Quarterly, Yearly...
	MembershipStartDate string          `json:"membership_start_date,omitempty"` // Якорь платёжного календаря (fallback — JoinDate)
	MembershipEndDate   string          `json:"membership_end_date,omitempty"`   // Дата окончания абонемента, ограничивает календарь
	Status              string          `json:"status"`                          // Статус учётной записи: Active, Expired, On Hold...
	Fee                 int             `json:"fee"`                             // Стандартная месячная плата
	PaymentMode         string          `json:"payment_mode,omitempty"`          // Способ оплаты: Cash, UPI, Card...
	PaymentStatus       string          `json:"payment_status"`                  // Планово-уровневый флаг оплаты (не помесячный)
	Payments            map[string]bool `json:"payments"`                        // Помесячные отметки оплаты, ключ YYYY-MM
	PaymentsAmounts     map[string]int  `json:"payments_amounts,omitempty"`      // Фактически внесённые суммы по месяцам
	FrozenMonths        []string        `json:"frozen_months,omitempty"`         // Замороженные месяцы, исключённые из задолженности
	Version             int             `json:"-"`                               // Версия документа для optimistic lock
}

// DummyMember используется для приёма данных о новом участнике из JSON-запроса,
// прежде чем конвертировать их в Member. Даты приходят строками,
// чтобы их можно было валидировать и парсить вручную.
type DummyMember struct {
	Name                string `json:"name" validate:"required"`
	Phone               string `json:"phone" validate:"required"`
	Email               string `json:"email,omitempty" validate:"omitempty,email"`
	JoinDate            string `json:"join_date" validate:"required,datetime=2006-01-02"`
	MembershipType      string `json:"membership_type" validate:"required"`
	MembershipStartDate string `json:"membership_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MembershipEndDate   string `json:"membership_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Fee                 int    `json:"fee" validate:"required,gt=0"`
	PaymentMode         string `json:"payment_mode,omitempty"`
	PaymentStatus       string `json:"payment_status,omitempty" validate:"omitempty,oneof=Paid Pending Overdue"`
}
