package balances

import (
	"context"
	"net/http"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/dto"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/developeragencia/valecash/pkg/utils"
)

type Service interface {
	CreateBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetLedger(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the current cashback balance and lifetime totals for the authenticated user. A negative balance means a cancelled sale was reversed beyond the available funds.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance and totals"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current:     balance.CurrentBalance,
		TotalEarned: balance.TotalEarned,
		TotalSpent:  balance.TotalSpent,
	})
}

// GetLedger godoc
//
//	@Summary		Get user ledger history
//	@Description	Get the cashback and referral commission entries credited or reversed for the authenticated user
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerEntryDTO	"Ledger history"
//	@Success		204	{object}	utils.Response		"No entries"
//	@Failure		401	{object}	utils.Response		"User not authorized"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/user/ledger [get]
func (h *BalanceHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	entries, err := h.balanceService.GetLedger(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ledger entries")
		return
	}

	if len(entries) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No entries")
		return
	}

	response := make([]dto.LedgerEntryDTO, len(entries))
	for i, entry := range entries {
		response[i] = dto.LedgerEntryDTO{
			SaleID:    entry.SaleID,
			EntryType: entry.EntryType,
			Amount:    entry.Amount,
			Reversal:  entry.Reversal,
			CreatedAt: entry.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
