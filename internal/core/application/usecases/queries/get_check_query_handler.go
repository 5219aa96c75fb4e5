package queries

import (
	"context"
	"database/sql"
	"errors"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCheckQueryHandler reads a check view straight from the tables, without
// rehydrating the aggregate.
type GetCheckQueryHandler struct {
	db *gorm.DB
}

func NewGetCheckQueryHandler(db *gorm.DB) GetCheckQueryHandler {
	return GetCheckQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the check does not exist.
func (h GetCheckQueryHandler) Handle(ctx context.Context, query GetCheckQuery) (GetCheckQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCheckQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	checkID := query.CheckID().Bytes()

	view, err := h.header(db, checkID)
	if err != nil {
		return GetCheckQueryResponse{}, err
	}
	if view.Items, err = h.items(db, checkID); err != nil {
		return GetCheckQueryResponse{}, err
	}
	if view.Discounts, err = h.discounts(db, checkID); err != nil {
		return GetCheckQueryResponse{}, err
	}
	if view.Payments, err = h.payments(db, checkID); err != nil {
		return GetCheckQueryResponse{}, err
	}
	return view, nil
}

func (h GetCheckQueryHandler) header(db *gorm.DB, checkID uuid.UUID) (GetCheckQueryResponse, error) {
	row := db.Raw(`
		SELECT
			id,
			check_number,
			status,
			order_type,
			business_date,
			table_number,
			guest_count,
			subtotal,
			discount_total,
			tax_total,
			total,
			opened_at,
			closed_at,
			version
		FROM checks
		WHERE id = ?
	`, checkID).Row()

	var (
		view     GetCheckQueryResponse
		id       uuid.UUID
		status   int
		table    sql.NullString
		closedAt sql.NullTime
	)
	err := row.Scan(
		&id,
		&view.CheckNumber,
		&status,
		&view.OrderType,
		&view.BusinessDate,
		&table,
		&view.GuestCount,
		&view.Subtotal,
		&view.DiscountTotal,
		&view.TaxTotal,
		&view.Total,
		&view.OpenedAt,
		&closedAt,
		&view.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCheckQueryResponse{}, errs.NewObjectNotFoundError("checkID", checkID.String())
	}
	if err != nil {
		return GetCheckQueryResponse{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetCheckQueryResponse{}, err
	}
	view.Status = check.Status(status).String()
	view.TableNumber = table.String
	if closedAt.Valid {
		t := closedAt.Time.UTC()
		view.ClosedAt = &t
	}
	view.OpenedAt = view.OpenedAt.UTC()
	return view, nil
}

func (h GetCheckQueryHandler) items(db *gorm.DB, checkID uuid.UUID) ([]CheckItemView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			name,
			unit_price,
			quantity,
			sent,
			voided,
			discount_amount,
			tax_amount,
			round_id
		FROM check_items
		WHERE check_id = ?
		ORDER BY added_at, id
	`, checkID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CheckItemView, 0)
	for rows.Next() {
		var (
			item      CheckItemView
			id        uuid.UUID
			taxAmount decimal.NullDecimal
			roundID   uuid.NullUUID
		)
		if err = rows.Scan(
			&id,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.Sent,
			&item.Voided,
			&item.DiscountAmount,
			&taxAmount,
			&roundID,
		); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if taxAmount.Valid {
			amount := taxAmount.Decimal
			item.TaxAmount = &amount
		}
		if roundID.Valid {
			if item.RoundID, err = kernel.OptionalUUIDFromBytes(&roundID.UUID); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetCheckQueryHandler) discounts(db *gorm.DB, checkID uuid.UUID) ([]CheckDiscountView, error) {
	rows, err := db.Raw(`
		SELECT id, discount_id, amount
		FROM check_discounts
		WHERE check_id = ?
		ORDER BY applied_at, id
	`, checkID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	discounts := make([]CheckDiscountView, 0)
	for rows.Next() {
		var (
			d                CheckDiscountView
			id, definitionID uuid.UUID
		)
		if err = rows.Scan(&id, &definitionID, &d.Amount); err != nil {
			return nil, err
		}
		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if d.DiscountID, err = kernel.UUIDFromBytes(definitionID[:]); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

func (h GetCheckQueryHandler) payments(db *gorm.DB, checkID uuid.UUID) ([]CheckPaymentView, error) {
	rows, err := db.Raw(`
		SELECT id, tender_type, paid_amount, change_due, status
		FROM payments
		WHERE check_id = ?
		ORDER BY created_at, id
	`, checkID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]CheckPaymentView, 0)
	for rows.Next() {
		var (
			p  CheckPaymentView
			id uuid.UUID
		)
		if err = rows.Scan(&id, &p.TenderType, &p.PaidAmount, &p.ChangeDue, &p.Status); err != nil {
			return nil, err
		}
		if p.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
