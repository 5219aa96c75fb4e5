package queries

import (
	"context"
	"database/sql"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetStationTicketsQueryHandler struct {
	db *gorm.DB
}

func NewGetStationTicketsQueryHandler(db *gorm.DB) GetStationTicketsQueryHandler {
	return GetStationTicketsQueryHandler{db: db}
}

// Handle runs a single join and folds the rows into tickets. Preview tickets
// never carry a device and so never show up here.
func (h GetStationTicketsQueryHandler) Handle(
	ctx context.Context,
	query GetStationTicketsQuery,
) ([]GetStationTicketsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.check_id,
			c.check_number,
			t.station_type,
			t.status,
			t.paid,
			t.created_at,
			ti.check_item_id,
			ci.name,
			ci.quantity,
			ci.voided,
			ti.is_ready
		FROM kds_tickets t
		JOIN checks c ON c.id = t.check_id
		LEFT JOIN kds_ticket_items ti ON ti.ticket_id = t.id
		LEFT JOIN check_items ci ON ci.id = ti.check_item_id
		WHERE t.kds_device_id = ? AND t.status <> ?
		ORDER BY t.created_at, t.id, ti.position
	`, query.KdsDeviceID().Bytes(), string(kitchen.TicketVoided)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]GetStationTicketsQueryResponse, 0)
	for rows.Next() {
		var (
			ticketID, checkID uuid.UUID
			checkNumber       int
			stationType       sql.NullString
			status            string
			paid              bool
			createdAt         time.Time
			checkItemID       uuid.NullUUID
			name              sql.NullString
			quantity          decimal.NullDecimal
			voided, isReady   sql.NullBool
		)
		if err = rows.Scan(
			&ticketID,
			&checkID,
			&checkNumber,
			&stationType,
			&status,
			&paid,
			&createdAt,
			&checkItemID,
			&name,
			&quantity,
			&voided,
			&isReady,
		); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(ticketID[:])
		if idErr != nil {
			return nil, idErr
		}
		if len(tickets) == 0 || !tickets[len(tickets)-1].ID.IsEqual(id) {
			cid, cidErr := kernel.UUIDFromBytes(checkID[:])
			if cidErr != nil {
				return nil, cidErr
			}
			tickets = append(tickets, GetStationTicketsQueryResponse{
				ID:          id,
				CheckID:     cid,
				CheckNumber: checkNumber,
				StationType: stationType.String,
				Status:      status,
				Paid:        paid,
				CreatedAt:   createdAt.UTC(),
				Items:       make([]StationTicketItemView, 0),
			})
		}

		if !checkItemID.Valid {
			continue
		}
		itemID, itemErr := kernel.UUIDFromBytes(checkItemID.UUID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		current := &tickets[len(tickets)-1]
		current.Items = append(current.Items, StationTicketItemView{
			CheckItemID: itemID,
			Name:        name.String,
			Quantity:    quantity.Decimal,
			Voided:      voided.Bool,
			IsReady:     isReady.Bool,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}
