package dto

type ReferralStatsDTO struct {
	ReferralCode  string  `json:"referral_code" example:"9F3A2C1B"`
	ReferralLink  string  `json:"referral_link" example:"https://valecash.app/signup?ref=9F3A2C1B"`
	ReferredCount int     `json:"referred_count" example:"7"`
	TotalEarned   float64 `json:"total_earned" example:"31.4"`
}
