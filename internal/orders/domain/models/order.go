package models

// Status is the closed set of order lifecycle states.
type Status string

const (
	StatusNew  Status = "NEW"
	StatusDone Status = "DONE"
)

const DefaultPaymentStatus = "UNPAID"

// Order mirrors one row of the orders table. Items is the raw serialized
// blob exactly as submitted; CompletionTime, TimeTakenMinutes and DayOfWeek
// are nullable in the store and stay pointers here.
type Order struct {
	ID               int
	CustomOrderID    string
	Waiter           string
	Customer         string
	Items            string
	Status           Status
	PaymentStatus    string
	Time             string
	CompletionTime   *string
	TimeTakenMinutes *int
	DayOfWeek        *int
}

func (o Order) Done() bool {
	return o.Status == StatusDone
}
