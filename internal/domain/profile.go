package domain

import "time"

const ProfileHeadlineMaxLen = 120

type UserProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
