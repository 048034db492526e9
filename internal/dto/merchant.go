package dto

type MerchantSettingsDTO struct {
	StoreName string  `json:"store_name" example:"Padaria Central"`
	BonusRate float64 `json:"bonus_rate" example:"0.01"`
	Active    bool    `json:"active" example:"true"`
}

type UpdateMerchantSettingsDTO struct {
	StoreName string  `json:"store_name" validate:"required,max=100"`
	BonusRate float64 `json:"bonus_rate" validate:"gte=0"`
}

type MerchantReportDTO struct {
	SalesCount       int     `json:"sales_count" example:"120"`
	GrossTotal       float64 `json:"gross_total" example:"14200.5"`
	NetTotal         float64 `json:"net_total" example:"13980"`
	CashbackTotal    float64 `json:"cashback_total" example:"279.6"`
	MerchantReceives float64 `json:"merchant_receives_total" example:"13281"`
}
