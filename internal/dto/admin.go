package dto

import "time"

type UserDTO struct {
	ID           int       `json:"id" example:"42"`
	Login        string    `json:"login" example:"maria"`
	Role         string    `json:"role" example:"client"`
	ReferralCode string    `json:"referral_code" example:"9F3A2C1B"`
	ReferredBy   *int      `json:"referred_by,omitempty" example:"7"`
	CreatedAt    time.Time `json:"created_at"`
}

type PlatformReportDTO struct {
	SalesCount     int     `json:"sales_count" example:"3400"`
	GrossTotal     float64 `json:"gross_total" example:"410000"`
	NetTotal       float64 `json:"net_total" example:"398000"`
	FeeTotal       float64 `json:"fee_total" example:"19900"`
	CashbackTotal  float64 `json:"cashback_total" example:"7960"`
	CommissionPaid float64 `json:"commission_paid" example:"3980"`
}

type SetMerchantActiveDTO struct {
	Active bool `json:"active"`
}
