package dto

import "time"

type RegisterSaleRequestDTO struct {
	SaleID        string  `json:"sale_id" validate:"omitempty,uuid4" example:"16b2c4e2-36c9-4c97-9b06-8a1f4f4d6f2a"`
	ClientID      int     `json:"client_id" validate:"required,gt=0" example:"42"`
	GrossAmount   float64 `json:"gross_amount" validate:"required" example:"100"`
	Discount      float64 `json:"discount" example:"20"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card gateway" example:"card"`
	CardNumber    string  `json:"card_number" validate:"required_if=PaymentMethod card" example:"2377225624"`
}

type SettlementBreakdownDTO struct {
	NetAmount          float64 `json:"net_amount" example:"80"`
	PlatformFee        float64 `json:"platform_fee" example:"4"`
	CashbackAmount     float64 `json:"cashback_amount" example:"2.4"`
	MerchantReceives   float64 `json:"merchant_receives" example:"76"`
	ReferralCommission float64 `json:"referral_commission" example:"0.8"`
}

type SaleResponseDTO struct {
	ID            string                 `json:"id"`
	ClientID      int                    `json:"client_id"`
	GrossAmount   float64                `json:"gross_amount"`
	Discount      float64                `json:"discount"`
	PaymentMethod string                 `json:"payment_method"`
	Status        string                 `json:"status"`
	Breakdown     SettlementBreakdownDTO `json:"breakdown"`
	CreatedAt     time.Time              `json:"created_at"`
}
