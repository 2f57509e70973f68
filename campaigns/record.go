// Package campaigns dispatches bulk sends and stores their outcome.
package campaigns

import (
	"time"

	"github.com/google/uuid"
)

// Delivery outcome statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Outcome is the result of one delivery attempt.
type Outcome struct {
	Email     string `json:"email"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Record is an immutable campaign history entry.
type Record struct {
	SentAt          time.Time `json:"sentAt"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	SentBy          string    `json:"sentBy"`
	Recipients      []Outcome `json:"recipients,omitempty"`
	TotalRecipients int       `json:"totalRecipients"`
	SuccessfulSends int       `json:"successfulSends"`
	FailedSends     int       `json:"failedSends"`
	ID              uuid.UUID `json:"_id"`
}

// Summary is the per-campaign tally returned to the caller.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// NewRecord builds a record whose counts are derived from outcomes, so
// SuccessfulSends+FailedSends == TotalRecipients == len(Recipients) holds.
// An outcome with an unknown status is rejected.
func NewRecord(subject, body, sentBy string, outcomes []Outcome, sentAt time.Time) (Record, error) {
	r := Record{
		ID:              uuid.New(),
		Subject:         subject,
		Body:            body,
		SentBy:          sentBy,
		SentAt:          sentAt.UTC(),
		Recipients:      outcomes,
		TotalRecipients: len(outcomes),
	}
	if r.SentBy == "" {
		r.SentBy = "admin"
	}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSuccess:
			r.SuccessfulSends++
		case StatusFailed:
			r.FailedSends++
		default:
			return Record{}, ErrCountMismatch
		}
	}
	return r, nil
}

// Summary returns the record's counts.
func (r Record) Summary() Summary {
	return Summary{Total: r.TotalRecipients, Successful: r.SuccessfulSends, Failed: r.FailedSends}
}

func (r Record) valid() bool {
	return r.SuccessfulSends >= 0 && r.FailedSends >= 0 &&
		r.SuccessfulSends+r.FailedSends == r.TotalRecipients &&
		r.TotalRecipients == len(r.Recipients)
}
