package dto

import "time"

type LoginRequest struct {
	User string `json:"user"`
	Role string `json:"role"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	User      string    `json:"user"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
