package enum

// OrderPaymentStatus is the payment axis of an order, independent of
// its fulfilment status.
type OrderPaymentStatus string

const (
	OrderPaymentPending  OrderPaymentStatus = "pending"
	OrderPaymentPaid     OrderPaymentStatus = "paid"
	OrderPaymentFailed   OrderPaymentStatus = "failed"
	OrderPaymentRefunded OrderPaymentStatus = "refunded"
)

// PaymentStatus is the status of a single payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how a payment was taken.
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodUPI     PaymentMethod = "upi"
	PaymentMethodGateway PaymentMethod = "razorpay"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodGateway:
		return true
	}
	return false
}

// Manual reports whether the method is taken at the counter rather than
// through the gateway.
func (m PaymentMethod) Manual() bool {
	return m != PaymentMethodGateway
}
