package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
)

type recordResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Category  string     `json:"category"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(r *record.Record) recordResponse {
	return recordResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  r.Category,
		Name:      r.Name,
		Amount:    r.Amount.InexactFloat64(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// toResponseList never returns nil so empty pages encode as [].
func toResponseList(rs []*record.Record) []recordResponse {
	resp := make([]recordResponse, len(rs))
	for i, r := range rs {
		resp[i] = toResponse(r)
	}

	return resp
}
