package domain

import "time"

type TableConfig struct {
	ID          string `json:"id"`
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Section     string `json:"section"`
}

type OrderStatus string

const (
	OrderCreated           OrderStatus = "CREATED"
	OrderOrdering          OrderStatus = "ORDERING"
	OrderSentToKitchen     OrderStatus = "SENT_TO_KITCHEN"
	OrderInPrep            OrderStatus = "IN_PREP"
	OrderReady             OrderStatus = "READY"
	OrderServed            OrderStatus = "SERVED"
	OrderPendingPayment    OrderStatus = "PENDING_PAYMENT"
	OrderPaymentInProgress OrderStatus = "PAYMENT_IN_PROGRESS"
	OrderPaid              OrderStatus = "PAID"
	OrderCompleted         OrderStatus = "COMPLETED"
	OrderCancelled         OrderStatus = "CANCELLED"
)

// Terminal reports whether the order no longer holds its tables.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderPaid, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type OrderRecord struct {
	ID           string      `json:"id"`
	TableID      string      `json:"table_id"`
	LinkedTables []int       `json:"linked_tables"`
	GuestCount   int         `json:"guest_count"`
	Status       OrderStatus `json:"status"`
	GroupID      string      `json:"group_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type DisplayStatus string

const (
	DisplayAvailable       DisplayStatus = "AVAILABLE"
	DisplaySeated          DisplayStatus = "SEATED"
	DisplayAwaitingOrder   DisplayStatus = "AWAITING_ORDER"
	DisplayFoodSent        DisplayStatus = "FOOD_SENT"
	DisplayRequestingCheck DisplayStatus = "REQUESTING_CHECK"
	DisplayPaying          DisplayStatus = "PAYING"
)

// TableState is derived on every read and never stored.
type TableState struct {
	TableID             string        `json:"table_id"`
	TableNumber         int           `json:"table_number"`
	Capacity            int           `json:"capacity"`
	Section             string        `json:"section"`
	OrderID             string        `json:"order_id,omitempty"`
	IsOccupied          bool          `json:"is_occupied"`
	GuestCount          *int          `json:"guest_count"`
	DisplayStatus       DisplayStatus `json:"display_status"`
	IsLinked            bool          `json:"is_linked"`
	IsPrimary           bool          `json:"is_primary"`
	LinkedWith          []int         `json:"linked_with"`
	DurationSinceSeated *string       `json:"duration_since_seated"`
}

type LinkedGroup struct {
	GroupID      string `json:"group_id"`
	OrderID      string `json:"order_id"`
	TableNumbers []int  `json:"table_numbers"`
	Color        string `json:"color"`
}
