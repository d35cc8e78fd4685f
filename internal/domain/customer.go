package domain

import "time"

type Customer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
