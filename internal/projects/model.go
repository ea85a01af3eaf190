package projects

import "time"

// Project is the permit project documents are filed under.
type Project struct {
	ID           string
	Name         string
	ContactName  string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
}
