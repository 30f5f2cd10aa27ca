package model

import "time"

// OrderForm holds the customer-entered checkout fields.
type OrderForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Message string `json:"message"`
}

// OrderItem is the line-item view of a cart item as it appears in the
// relayed email and the mailto body.
type OrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// OrderPayload is the snapshot assembled for a single submission attempt.
// It combines the form fields, the cart contents and the submission time;
// it is never persisted.
type OrderPayload struct {
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
	Address    string      `json:"address"`
	Message    string      `json:"message"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	OrderDate  time.Time   `json:"orderDate"`
}

// SubmissionStatus identifies the outcome of an order submission.
type SubmissionStatus string

const (
	// StatusDelivered means the relay accepted the order email.
	StatusDelivered SubmissionStatus = "delivered"

	// StatusDeliveredViaFallback means the order was handed off to the
	// customer's mail client. This is a success from the user's
	// perspective; Warning is set only when a relay attempt failed first.
	StatusDeliveredViaFallback SubmissionStatus = "delivered_via_fallback"

	// StatusRejected means validation failed and nothing was sent.
	StatusRejected SubmissionStatus = "rejected"
)

// SubmissionResult is the outcome of Flow.Submit. Only a Rejected result
// blocks the success path.
type SubmissionResult struct {
	Status      SubmissionStatus  `json:"status"`
	OrderID     string            `json:"orderId,omitempty"`
	MailtoURI   string            `json:"mailtoUri,omitempty"`
	Warning     string            `json:"warning,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}
