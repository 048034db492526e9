package domain

import "time"

const (
	RoleClient   = "client"
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	ReferralCode string    `db:"referral_code"`
	ReferredBy   *int      `db:"referred_by"`
	CreatedAt    time.Time `db:"created_at"`
}

type Merchant struct {
	ID        int     `db:"id"`
	UserID    int     `db:"user_id"`
	StoreName string  `db:"store_name"`
	BonusRate float64 `db:"bonus_rate"`
	Active    bool    `db:"active"`
}

const (
	// PendingSaleStatus sale registered, gateway payment not confirmed yet;
	PendingSaleStatus string = "PENDING"
	// CompletedSaleStatus settlement effects applied to balances;
	CompletedSaleStatus string = "COMPLETED"
	// CancelledSaleStatus sale cancelled, any applied effects reversed.
	CancelledSaleStatus string = "CANCELLED"
)

const (
	PaymentMethodCash    = "cash"
	PaymentMethodCard    = "card"
	PaymentMethodGateway = "gateway"
)

type Sale struct {
	ID            string    `db:"id"`
	ClientID      int       `db:"client_id"`
	MerchantID    int       `db:"merchant_id"`
	GrossAmount   float64   `db:"gross_amount"`
	Discount      float64   `db:"discount"`
	PaymentMethod string    `db:"payment_method"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`

	Breakdown SettlementBreakdown
}

// SettlementBreakdown is persisted alongside the sale at registration
// time. Cancellation reverses these stored amounts, never a recomputation.
type SettlementBreakdown struct {
	NetAmount          float64 `db:"net_amount"`
	PlatformFee        float64 `db:"platform_fee"`
	CashbackAmount     float64 `db:"cashback_amount"`
	MerchantReceives   float64 `db:"merchant_receives"`
	ReferralCommission float64 `db:"referral_commission"`
	ReferrerID         *int    `db:"referrer_id"`
}

type Balance struct {
	ID             int     `db:"id"`
	UserID         int     `db:"user_id"`
	CurrentBalance float64 `db:"current_balance"`
	TotalEarned    float64 `db:"total_earned"`
	TotalSpent     float64 `db:"total_spent"`
}

const (
	CashbackEntry           = "CASHBACK"
	ReferralCommissionEntry = "REFERRAL_COMMISSION"
	MerchantPayoutEntry     = "MERCHANT_PAYOUT"
	PlatformFeeEntry        = "PLATFORM_FEE"
)

// LedgerEntry is the audit line written for every applied or reversed
// settlement effect. Reversals carry negative amounts.
type LedgerEntry struct {
	ID        int       `db:"id"`
	SaleID    string    `db:"sale_id"`
	UserID    *int      `db:"user_id"`
	EntryType string    `db:"entry_type"`
	Amount    float64   `db:"amount"`
	Reversal  bool      `db:"reversal"`
	CreatedAt time.Time `db:"created_at"`
}
