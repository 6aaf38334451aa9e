package domain

import "time"

// BlockedDate is a date closed by an administrator regardless of the weekly schedule
type BlockedDate struct {
	ID        int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}
