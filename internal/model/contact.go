package model

import "time"

// Contact is a saved contact-form submission.
type Contact struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	InsertedDate time.Time `json:"inserted_date"`
}
