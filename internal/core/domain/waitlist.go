package domain

import "time"

// WaitlistEntry is a pre-launch signup captured from the public landing page.
type WaitlistEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Interest  Role      `json:"interest" bson:"interest"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
