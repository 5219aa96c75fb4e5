package queries

import (
	"context"
	"database/sql"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOpenChecksQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenChecksQueryHandler(db *gorm.DB) GetOpenChecksQueryHandler {
	return GetOpenChecksQueryHandler{db: db}
}

// Handle returns open checks ordered by check number. An RVC with no open
// checks yields an empty slice.
func (h GetOpenChecksQueryHandler) Handle(
	ctx context.Context,
	query GetOpenChecksQuery,
) ([]GetOpenChecksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			check_number,
			table_number,
			guest_count,
			employee_id,
			total,
			version
		FROM checks
		WHERE rvc_id = ? AND status = ?
		ORDER BY check_number
	`, query.RvcID().Bytes(), int(check.Open)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := make([]GetOpenChecksQueryResponse, 0)
	for rows.Next() {
		var (
			resp           GetOpenChecksQueryResponse
			id, employeeID uuid.UUID
			table          sql.NullString
		)
		if err = rows.Scan(
			&id,
			&resp.CheckNumber,
			&table,
			&resp.GuestCount,
			&employeeID,
			&resp.Total,
			&resp.Version,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.EmployeeID, err = kernel.UUIDFromBytes(employeeID[:]); err != nil {
			return nil, err
		}
		resp.TableNumber = table.String
		checks = append(checks, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return checks, nil
}
