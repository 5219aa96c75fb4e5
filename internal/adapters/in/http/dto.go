package http

import (
	"time"

	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/application/usecases/queries"
	"checkcore/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// checkRequest carries the fields every check mutation shares.
type checkRequest struct {
	EmployeeID      kernel.UUID `json:"employeeId"`
	ExpectedVersion *int        `json:"expectedVersion,omitempty"`
}

type managedRequest struct {
	checkRequest
	ManagerPIN string `json:"managerPin,omitempty"`
}

type OpenCheckRequest struct {
	RvcID       kernel.UUID  `json:"rvcId"`
	PropertyID  kernel.UUID  `json:"propertyId"`
	EmployeeID  kernel.UUID  `json:"employeeId"`
	OrderType   string       `json:"orderType"`
	TableNumber string       `json:"tableNumber,omitempty"`
	GuestCount  int          `json:"guestCount,omitempty"`
	CustomerID  *kernel.UUID `json:"customerId,omitempty"`
}

type ModifierRequest struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

type LinkedEntityRequest struct {
	Kind string      `json:"kind"`
	ID   kernel.UUID `json:"id"`
}

type AddItemRequest struct {
	checkRequest
	MenuItemID   *kernel.UUID         `json:"menuItemId,omitempty"`
	Name         string               `json:"name"`
	UnitPrice    decimal.Decimal      `json:"unitPrice"`
	Quantity     decimal.NullDecimal  `json:"quantity"`
	Modifiers    []ModifierRequest    `json:"modifiers,omitempty"`
	LinkedEntity *LinkedEntityRequest `json:"linkedEntity,omitempty"`
}

type ModifyItemRequest struct {
	checkRequest
	Quantity  decimal.NullDecimal `json:"quantity"`
	Modifiers []ModifierRequest   `json:"modifiers,omitempty"`
}

type OverridePriceRequest struct {
	managedRequest
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type VoidItemRequest struct {
	managedRequest
	Reason string `json:"reason"`
}

type DiscountRequest struct {
	managedRequest
	DiscountID kernel.UUID     `json:"discountId"`
	Amount     decimal.Decimal `json:"amount"`
}

type PaymentRequest struct {
	checkRequest
	TenderType string          `json:"tenderType"`
	Amount     decimal.Decimal `json:"amount"`
}

type ShareRequest struct {
	ItemID kernel.UUID     `json:"itemId"`
	Ratio  decimal.Decimal `json:"ratio"`
}

type SplitRequest struct {
	checkRequest
	TargetCheckID *kernel.UUID   `json:"targetCheckId,omitempty"`
	Move          []kernel.UUID  `json:"move,omitempty"`
	Share         []ShareRequest `json:"share,omitempty"`
}

type MergeRequest struct {
	checkRequest
	SourceCheckIDs []kernel.UUID `json:"sourceCheckIds"`
}

type TransferRequest struct {
	checkRequest
	ToEmployeeID kernel.UUID `json:"toEmployeeId"`
}

type LockRequest struct {
	WorkstationID string      `json:"workstationId"`
	EmployeeID    kernel.UUID `json:"employeeId"`
	TTLSeconds    int         `json:"ttlSeconds,omitempty"`
}

type BumpRequest struct {
	EmployeeID kernel.UUID `json:"employeeId"`
}

// CheckResponse is returned by every check mutation. Money is rendered with
// two decimals.
type CheckResponse struct {
	CheckID       kernel.UUID `json:"checkId"`
	CheckNumber   int         `json:"checkNumber"`
	Status        string      `json:"status"`
	Version       int         `json:"version"`
	Subtotal      string      `json:"subtotal"`
	DiscountTotal string      `json:"discountTotal"`
	TaxTotal      string      `json:"taxTotal"`
	Total         string      `json:"total"`
}

type AddItemResponse struct {
	CheckResponse
	ItemID kernel.UUID `json:"itemId"`
}

type SendResponse struct {
	CheckResponse
	RoundID     kernel.UUID   `json:"roundId"`
	RoundNumber int           `json:"roundNumber"`
	TicketIDs   []kernel.UUID `json:"ticketIds"`
}

type PaymentResponse struct {
	CheckResponse
	PaymentID  kernel.UUID `json:"paymentId"`
	PaidAmount string      `json:"paidAmount"`
	ChangeDue  string      `json:"changeDue"`
	BalanceDue string      `json:"balanceDue"`
	Closed     bool        `json:"closed"`
}

type SplitResponse struct {
	Source CheckResponse `json:"source"`
	Target CheckResponse `json:"target"`
}

type LockResponse struct {
	CheckID       kernel.UUID `json:"checkId"`
	WorkstationID string      `json:"workstationId"`
	ExpiresAt     time.Time   `json:"expiresAt"`
}

type CheckItemResponse struct {
	ID             kernel.UUID  `json:"id"`
	Name           string       `json:"name"`
	UnitPrice      string       `json:"unitPrice"`
	Quantity       string       `json:"quantity"`
	Sent           bool         `json:"sent"`
	Voided         bool         `json:"voided"`
	DiscountAmount string       `json:"discountAmount"`
	TaxAmount      *string      `json:"taxAmount,omitempty"`
	RoundID        *kernel.UUID `json:"roundId,omitempty"`
}

type CheckDiscountResponse struct {
	ID         kernel.UUID `json:"id"`
	DiscountID kernel.UUID `json:"discountId"`
	Amount     string      `json:"amount"`
}

type CheckPaymentResponse struct {
	ID         kernel.UUID `json:"id"`
	TenderType string      `json:"tenderType"`
	PaidAmount string      `json:"paidAmount"`
	ChangeDue  string      `json:"changeDue"`
	Status     string      `json:"status"`
}

type CheckViewResponse struct {
	ID            kernel.UUID             `json:"id"`
	CheckNumber   int                     `json:"checkNumber"`
	Status        string                  `json:"status"`
	OrderType     string                  `json:"orderType"`
	BusinessDate  string                  `json:"businessDate"`
	TableNumber   string                  `json:"tableNumber,omitempty"`
	GuestCount    int                     `json:"guestCount"`
	Subtotal      string                  `json:"subtotal"`
	DiscountTotal string                  `json:"discountTotal"`
	TaxTotal      string                  `json:"taxTotal"`
	Total         string                  `json:"total"`
	OpenedAt      time.Time               `json:"openedAt"`
	ClosedAt      *time.Time              `json:"closedAt,omitempty"`
	Version       int                     `json:"version"`
	Items         []CheckItemResponse     `json:"items"`
	Discounts     []CheckDiscountResponse `json:"discounts"`
	Payments      []CheckPaymentResponse  `json:"payments"`
}

type OpenCheckSummaryResponse struct {
	ID          kernel.UUID `json:"id"`
	CheckNumber int         `json:"checkNumber"`
	TableNumber string      `json:"tableNumber,omitempty"`
	GuestCount  int         `json:"guestCount"`
	EmployeeID  kernel.UUID `json:"employeeId"`
	Total       string      `json:"total"`
	Version     int         `json:"version"`
}

type StationTicketItemResponse struct {
	CheckItemID kernel.UUID `json:"checkItemId"`
	Name        string      `json:"name"`
	Quantity    string      `json:"quantity"`
	Voided      bool        `json:"voided"`
	IsReady     bool        `json:"isReady"`
}

type StationTicketResponse struct {
	ID          kernel.UUID                 `json:"id"`
	CheckID     kernel.UUID                 `json:"checkId"`
	CheckNumber int                         `json:"checkNumber"`
	StationType string                      `json:"stationType,omitempty"`
	Status      string                      `json:"status"`
	Paid        bool                        `json:"paid"`
	CreatedAt   time.Time                   `json:"createdAt"`
	Items       []StationTicketItemResponse `json:"items"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toCheckResponse(r commands.CheckResult) CheckResponse {
	return CheckResponse{
		CheckID:       r.CheckID,
		CheckNumber:   r.CheckNumber,
		Status:        r.Status.String(),
		Version:       r.Version,
		Subtotal:      money(r.Totals.Subtotal),
		DiscountTotal: money(r.Totals.DiscountTotal),
		TaxTotal:      money(r.Totals.TaxTotal),
		Total:         money(r.Totals.Total),
	}
}

func toCheckViewResponse(v queries.GetCheckQueryResponse) CheckViewResponse {
	resp := CheckViewResponse{
		ID:            v.ID,
		CheckNumber:   v.CheckNumber,
		Status:        v.Status,
		OrderType:     v.OrderType,
		BusinessDate:  v.BusinessDate,
		TableNumber:   v.TableNumber,
		GuestCount:    v.GuestCount,
		Subtotal:      money(v.Subtotal),
		DiscountTotal: money(v.DiscountTotal),
		TaxTotal:      money(v.TaxTotal),
		Total:         money(v.Total),
		OpenedAt:      v.OpenedAt,
		ClosedAt:      v.ClosedAt,
		Version:       v.Version,
		Items:         make([]CheckItemResponse, len(v.Items)),
		Discounts:     make([]CheckDiscountResponse, len(v.Discounts)),
		Payments:      make([]CheckPaymentResponse, len(v.Payments)),
	}
	for i, item := range v.Items {
		resp.Items[i] = CheckItemResponse{
			ID:             item.ID,
			Name:           item.Name,
			UnitPrice:      money(item.UnitPrice),
			Quantity:       item.Quantity.String(),
			Sent:           item.Sent,
			Voided:         item.Voided,
			DiscountAmount: money(item.DiscountAmount),
			RoundID:        item.RoundID,
		}
		if item.TaxAmount != nil {
			tax := money(*item.TaxAmount)
			resp.Items[i].TaxAmount = &tax
		}
	}
	for i, d := range v.Discounts {
		resp.Discounts[i] = CheckDiscountResponse{ID: d.ID, DiscountID: d.DiscountID, Amount: money(d.Amount)}
	}
	for i, p := range v.Payments {
		resp.Payments[i] = CheckPaymentResponse{
			ID:         p.ID,
			TenderType: p.TenderType,
			PaidAmount: money(p.PaidAmount),
			ChangeDue:  money(p.ChangeDue),
			Status:     p.Status,
		}
	}
	return resp
}
