package enums

// OutboxEventType names the domain events written to the outbox table.
type OutboxEventType string

const (
	OutboxEventOrderCreated       OutboxEventType = "order.created"
	OutboxEventOrderStatusChanged OutboxEventType = "order.status_changed"
	OutboxEventReservationCreated OutboxEventType = "reservation.created"
	OutboxEventInventoryLowStock  OutboxEventType = "inventory.low_stock"
)

// String implements fmt.Stringer.
func (t OutboxEventType) String() string {
	return string(t)
}

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateOrder       OutboxAggregateType = "order"
	OutboxAggregateReservation OutboxAggregateType = "reservation"
	OutboxAggregateInventory   OutboxAggregateType = "inventory_item"
)

// String implements fmt.Stringer.
func (t OutboxAggregateType) String() string {
	return string(t)
}

// OutboxStatus tracks delivery progress of an outbox row.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// String implements fmt.Stringer.
func (s OutboxStatus) String() string {
	return string(s)
}
