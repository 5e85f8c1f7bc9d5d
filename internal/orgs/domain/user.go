package domain

import "time"

// User mirrors an identity owned by the auth service. Rows are provisioned
// from verified token claims.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
