package entity

import "strings"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
)

func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPending || s == OrderStatusCompleted
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted
}

// CanTransitionTo allows exactly one edge: Pending -> Completed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusPending && next == OrderStatusCompleted
}

// StoredValues lists every status field value that reads back as s, the
// canonical string first. Queries filtering on status match all of them so
// orders that were never migrated are still found.
func (s OrderStatus) StoredValues() []interface{} {
	switch s {
	case OrderStatusPending:
		return []interface{}{string(OrderStatusPending), false}
	case OrderStatusCompleted:
		return []interface{}{string(OrderStatusCompleted), true, "Delivered"}
	}
	return []interface{}{string(s)}
}

// ParseOrderStatus normalises the stored status field. Older documents used a
// boolean (false pending, true delivered) or the label "Delivered".
func ParseOrderStatus(raw interface{}) (status OrderStatus, legacy bool, err error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return OrderStatusCompleted, true, nil
		}
		return OrderStatusPending, true, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "pending":
			return OrderStatusPending, v != string(OrderStatusPending), nil
		case "completed":
			return OrderStatusCompleted, v != string(OrderStatusCompleted), nil
		case "delivered":
			return OrderStatusCompleted, true, nil
		}
	}
	return "", false, ErrUnknownOrderStatus
}
