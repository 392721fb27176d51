// Package tables derives what the floor plan shows for every table from the static
// table configuration and the orders that are currently open. Nothing here is stored:
// states are recomputed from their inputs on every read.
package tables

import (
	"fmt"
	"time"

	"github.com/TemirB/pos-core/internal/domain"
)

var displayByOrderStatus = map[domain.OrderStatus]domain.DisplayStatus{
	domain.OrderCreated:           domain.DisplaySeated,
	domain.OrderOrdering:          domain.DisplayAwaitingOrder,
	domain.OrderSentToKitchen:     domain.DisplayFoodSent,
	domain.OrderInPrep:            domain.DisplayFoodSent,
	domain.OrderReady:             domain.DisplayFoodSent,
	domain.OrderServed:            domain.DisplayFoodSent,
	domain.OrderPendingPayment:    domain.DisplayRequestingCheck,
	domain.OrderPaymentInProgress: domain.DisplayPaying,
}

// DisplayStatusFor maps an open order's status to the table badge.
// Statuses this build does not know about still show the table as seated.
func DisplayStatusFor(s domain.OrderStatus) domain.DisplayStatus {
	if s.Terminal() {
		return domain.DisplayAvailable
	}
	if d, ok := displayByOrderStatus[s]; ok {
		return d
	}
	return domain.DisplaySeated
}

// ActiveOrders keeps orders that still hold their tables, preserving order.
func ActiveOrders(orders []domain.OrderRecord) []domain.OrderRecord {
	out := make([]domain.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if !o.Status.Terminal() {
			out = append(out, o)
		}
	}
	return out
}

// ComputeTableStates returns one state per table, in table order.
//
// A table belongs to the first active order that references it by id; failing that, to
// the first active order listing its number among the linked tables. Two orders claiming
// the same table is not an error: the first one wins.
func ComputeTableStates(tables []domain.TableConfig, orders []domain.OrderRecord, now time.Time) []domain.TableState {
	active := ActiveOrders(orders)

	states := make([]domain.TableState, 0, len(tables))
	for _, t := range tables {
		o, ok := ownerOf(t, active)
		if !ok {
			states = append(states, available(t))
			continue
		}
		states = append(states, occupied(t, o, now))
	}
	return states
}

func ownerOf(t domain.TableConfig, active []domain.OrderRecord) (domain.OrderRecord, bool) {
	for _, o := range active {
		if o.TableID == t.ID {
			return o, true
		}
	}
	for _, o := range active {
		for _, n := range o.LinkedTables {
			if n == t.TableNumber {
				return o, true
			}
		}
	}
	return domain.OrderRecord{}, false
}

func available(t domain.TableConfig) domain.TableState {
	return domain.TableState{
		TableID:       t.ID,
		TableNumber:   t.TableNumber,
		Capacity:      t.Capacity,
		Section:       t.Section,
		DisplayStatus: domain.DisplayAvailable,
		LinkedWith:    []int{},
	}
}

func occupied(t domain.TableConfig, o domain.OrderRecord, now time.Time) domain.TableState {
	guests := o.GuestCount
	duration := FormatDuration(now.Sub(o.CreatedAt))

	linkedWith := make([]int, 0, len(o.LinkedTables))
	for _, n := range o.LinkedTables {
		if n != t.TableNumber {
			linkedWith = append(linkedWith, n)
		}
	}

	return domain.TableState{
		TableID:             t.ID,
		TableNumber:         t.TableNumber,
		Capacity:            t.Capacity,
		Section:             t.Section,
		OrderID:             o.ID,
		IsOccupied:          true,
		GuestCount:          &guests,
		DisplayStatus:       DisplayStatusFor(o.Status),
		IsLinked:            len(o.LinkedTables) > 1,
		IsPrimary:           o.TableID == t.ID,
		LinkedWith:          linkedWith,
		DurationSinceSeated: &duration,
	}
}

// FormatDuration renders "1h 5m" from an hour up and "25m" below it. Negative values
// (clock skew between the till and the database) render as "0m".
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
