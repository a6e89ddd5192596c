package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

const memberColumns = `id, reg_no, name, phone, email, join_date, membership_type,
		membership_start_date, membership_end_date, status, fee, payment_mode,
		payment_status, payments, payments_amounts, frozen_months, version`

// CreateMember вставляет карточку участника, выдавая следующий
// регистрационный номер, и возвращает его.
func (s *Storage) CreateMember(ctx context.Context, m models.Member) (int, error) {
	const op = "storage.CreateMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payments, amounts, frozen, err := marshalPaymentFields(models.PaymentFields{
		Payments:        m.Payments,
		PaymentsAmounts: m.PaymentsAmounts,
		FrozenMonths:    m.FrozenMonths,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO members (id, reg_no, name, phone, email, join_date, membership_type,
			      membership_start_date, membership_end_date, status, fee, payment_mode,
			      payment_status, payments, payments_amounts, frozen_months, version)
			  VALUES ($1, (SELECT COALESCE(MAX(reg_no), 0) + 1 FROM members), $2, $3, $4, $5,
			      $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1)
			  RETURNING reg_no`
	var regNo int
	err = s.DB.QueryRowContext(ctx, query,
		m.ID, m.Name, m.Phone, m.Email, m.JoinDate, m.MembershipType,
		m.MembershipStartDate, m.MembershipEndDate, m.Status, m.Fee, m.PaymentMode,
		m.PaymentStatus, payments, amounts, frozen).Scan(&regNo)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return regNo, nil
}

// GetMember возвращает карточку участника по ID.
func (s *Storage) GetMember(ctx context.Context, id string) (*models.Member, error) {
	const op = "storage.GetMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	member, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return member, nil
}

// ListMembers возвращает все карточки участников в порядке регистрации.
func (s *Storage) ListMembers(ctx context.Context) ([]*models.Member, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY reg_no`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePaymentFields выполняет merge-запись платёжных полей участника.
// Запись атомарна на уровне карточки: версия документа сверяется с
// expectedVersion, при расхождении возвращается ErrVersionConflict и
// прежнее состояние остаётся нетронутым.
func (s *Storage) UpdatePaymentFields(ctx context.Context, id string, fields models.PaymentFields, expectedVersion int) error {
	const op = "storage.UpdatePaymentFields"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payments, amounts, frozen, err := marshalPaymentFields(fields)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE members
			  SET payments = $2, payments_amounts = $3, frozen_months = $4, version = version + 1
			  WHERE id = $1 AND version = $5`
	result, err := s.DB.ExecContext(ctx, query, id, payments, amounts, frozen, expectedVersion)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		var exists bool
		if err := s.DB.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return fmt.Errorf("%s: %w", op, ErrVersionConflict)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	var payments, amounts, frozen []byte
	if err := row.Scan(&m.ID, &m.RegNo, &m.Name, &m.Phone, &m.Email, &m.JoinDate,
		&m.MembershipType, &m.MembershipStartDate, &m.MembershipEndDate, &m.Status,
		&m.Fee, &m.PaymentMode, &m.PaymentStatus, &payments, &amounts, &frozen,
		&m.Version); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payments, &m.Payments); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(amounts, &m.PaymentsAmounts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(frozen, &m.FrozenMonths); err != nil {
		return nil, err
	}
	return &m, nil
}

func marshalPaymentFields(fields models.PaymentFields) ([]byte, []byte, []byte, error) {
	if fields.Payments == nil {
		fields.Payments = map[string]bool{}
	}
	if fields.PaymentsAmounts == nil {
		fields.PaymentsAmounts = map[string]int{}
	}
	if fields.FrozenMonths == nil {
		fields.FrozenMonths = []string{}
	}
	payments, err := json.Marshal(fields.Payments)
	if err != nil {
		return nil, nil, nil, err
	}
	amounts, err := json.Marshal(fields.PaymentsAmounts)
	if err != nil {
		return nil, nil, nil, err
	}
	frozen, err := json.Marshal(fields.FrozenMonths)
	if err != nil {
		return nil, nil, nil, err
	}
	return payments, amounts, frozen, nil
}
