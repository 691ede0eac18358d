package domain

import "time"

// Client is a plain lookup record; contracts hold it as a foreign key.
type Client struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Reference string    `json:"reference"`
	CreatedOn time.Time `json:"created_on"`
}
