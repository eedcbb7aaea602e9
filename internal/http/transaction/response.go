package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/budgetease/internal/record"
	"github.com/MrJamesThe3rd/budgetease/internal/transaction"
)

type transactionResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Date     time.Time   `json:"date"`
	Amount   float64     `json:"amount"`
	Type     record.Kind `json:"type"`
	Category string      `json:"category"`
	Status   string      `json:"status"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Name:     tx.Name,
		Date:     tx.Date,
		Amount:   tx.Amount.InexactFloat64(),
		Type:     tx.Type,
		Category: tx.Category,
		Status:   tx.Status,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
