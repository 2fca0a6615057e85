package payment

import (
	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
)

// Tally is a count and amount sum over a set of payment records
type Tally struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// MonthBucket aggregates one calendar month of payment records
type MonthBucket struct {
	Total   Tally `json:"total"`
	Pending Tally `json:"pending"`
	Paid    Tally `json:"paid"`
	Overdue Tally `json:"overdue"`
}

// Statistics partitions payment records into 12 fixed month buckets with
// per-status tallies, plus year-wide totals
type Statistics struct {
	Months  [12]MonthBucket `json:"months"`
	Total   Tally           `json:"total"`
	Pending Tally           `json:"pending"`
	Paid    Tally           `json:"paid"`
	Overdue Tally           `json:"overdue"`
}

func (t *Tally) add(amount float64) {
	t.Count++
	t.Amount += amount
}

// ComputeStatistics projects a record set into month buckets. Bucketing
// uses the month component of the stored key, so local timezone never
// shifts a record across month boundaries. Records with a malformed
// month key are skipped. The function is pure: it never mutates its
// input and identical inputs yield identical output.
func ComputeStatistics(records []*database.PaymentRecord) *Statistics {
	stats := &Statistics{}
	for _, r := range records {
		idx, err := MonthIndex(r.PaymentMonth)
		if err != nil {
			continue
		}
		bucket := &stats.Months[idx]
		bucket.Total.add(r.Amount)
		stats.Total.add(r.Amount)
		switch cnst.PaymentStatus(r.Status) {
		case cnst.PaymentPaid:
			bucket.Paid.add(r.Amount)
			stats.Paid.add(r.Amount)
		case cnst.PaymentOverdue:
			bucket.Overdue.add(r.Amount)
			stats.Overdue.add(r.Amount)
		default:
			bucket.Pending.add(r.Amount)
			stats.Pending.add(r.Amount)
		}
	}
	return stats
}
