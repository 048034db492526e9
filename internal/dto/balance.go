package dto

import "time"

type BalanceResponseDTO struct {
	Current     float64 `json:"current" example:"500.5"`
	TotalEarned float64 `json:"total_earned" example:"620.3"`
	TotalSpent  float64 `json:"total_spent" example:"10400"`
}

type LedgerEntryDTO struct {
	SaleID    string    `json:"sale_id" example:"16b2c4e2-36c9-4c97-9b06-8a1f4f4d6f2a"`
	EntryType string    `json:"entry_type" example:"CASHBACK"`
	Amount    float64   `json:"amount" example:"2.4"`
	Reversal  bool      `json:"reversal" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
}
