package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	OrganizerID uint      `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID      uint   `json:"id"`
	EventID uint   `json:"event_id"`
	Name    string `json:"name"`
}
