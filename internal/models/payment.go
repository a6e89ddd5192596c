package models

// DummyPaymentUpdate используется для приёма обновления оплаты месяца
// из JSON-запроса. CoverMonths указывается явно, когда один платёж
// закрывает несколько последовательных месяцев (например, квартал).
type DummyPaymentUpdate struct {
	Month       string `json:"month" validate:"required,datetime=2006-01"`
	Status      string `json:"status" validate:"required,oneof=paid unpaid frozen"`
	Amount      *int   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	CoverMonths int    `json:"cover_months,omitempty" validate:"omitempty,gte=1,lte=12"`
}

// PaymentFields — результат применения мутации оплаты: новые карты
// платёжного состояния участника, готовые к merge-записи в хранилище.
// Записи по не затронутым месяцам сохраняются без изменений.
type PaymentFields struct {
	Payments        map[string]bool `json:"payments"`
	PaymentsAmounts map[string]int  `json:"payments_amounts"`
	FrozenMonths    []string        `json:"frozen_months"`
}
