package models

// AttemptFailure records why one candidate could not be booked.
type AttemptFailure struct {
	BrandLabel  string `json:"trainBrandLabel"`
	TicketLabel string `json:"ticketLabel"`
	Reason      string `json:"reason"`
}

// BookingOutcome is the result of one booking run.
type BookingOutcome struct {
	Success    bool   `json:"success"`
	InvoiceID  string `json:"invoiceId,omitempty"`
	Auth       string `json:"auth,omitempty"`
	PayAuth    string `json:"payAuth,omitempty"`
	PaymentURL string `json:"paymentUrl,omitempty"`

	// Booked is the candidate that reached the payment page, when Success.
	Booked *TrainCandidate `json:"booked,omitempty"`

	// Failures lists every candidate tried without success, in order.
	Failures []AttemptFailure `json:"failures,omitempty"`

	// Aborted distinguishes a run stopped by a fatal error from one that
	// exhausted all candidates. Both are reported as failure to the caller.
	Aborted bool   `json:"aborted,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ExitCode maps the outcome to the process exit code.
func (o BookingOutcome) ExitCode() int {
	if o.Success {
		return 0
	}
	return 1
}
