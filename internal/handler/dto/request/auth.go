package request

import "github.com/google/uuid"

type DevTokenRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role" binding:"required,oneof=producer consumer"`
}
