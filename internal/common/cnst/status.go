package cnst

// PaymentStatus represents the lifecycle state of a payment record
type PaymentStatus string

const (
	// PaymentPending is the initial state of a newly ensured payment record
	PaymentPending PaymentStatus = "pending"
	// PaymentPaid marks a settled payment record
	PaymentPaid PaymentStatus = "paid"
	// PaymentOverdue marks a pending record whose month has passed
	PaymentOverdue PaymentStatus = "overdue"
)

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// SubmissionStatus represents the workflow state of a tenant submission
type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionResolved   SubmissionStatus = "resolved"
	SubmissionRejected   SubmissionStatus = "rejected"
)

// ValidSubmissionStatus reports whether s is a known submission status.
// Transitions are unconstrained: a manager may set any state from any state.
func ValidSubmissionStatus(s string) bool {
	switch SubmissionStatus(s) {
	case SubmissionPending, SubmissionInProgress, SubmissionResolved, SubmissionRejected:
		return true
	}
	return false
}

// SubmissionKind discriminates the three tenant-submitted item families
type SubmissionKind string

const (
	KindComplaint  SubmissionKind = "complaint"
	KindSuggestion SubmissionKind = "suggestion"
	KindReport     SubmissionKind = "report"
)

// ValidSubmissionKind reports whether k is a known submission kind
func ValidSubmissionKind(k string) bool {
	switch SubmissionKind(k) {
	case KindComplaint, KindSuggestion, KindReport:
		return true
	}
	return false
}
