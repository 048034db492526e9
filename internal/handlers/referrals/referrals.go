package referrals

import (
	"context"
	"net/http"

	"github.com/developeragencia/valecash/internal/dto"
	referralservice "github.com/developeragencia/valecash/internal/service/referralservice"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/developeragencia/valecash/pkg/utils"
)

type Service interface {
	GetStats(ctx context.Context, userID int) (*referralservice.Stats, error)
	QRCode(ctx context.Context, userID int) ([]byte, error)
}

type ReferralHandler struct {
	referralService Service
}

func New(referralService Service) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// GetStats godoc
//
//	@Summary		Get referral stats
//	@Description	Referral code, share link, number of referred users and the lifetime commission earned from their purchases
//	@Tags			Referrals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReferralStatsDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/referrals [get]
func (h *ReferralHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	stats, err := h.referralService.GetStats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ReferralStatsDTO{
		ReferralCode:  stats.ReferralCode,
		ReferralLink:  stats.ReferralLink,
		ReferredCount: stats.ReferredCount,
		TotalEarned:   stats.TotalEarned,
	})
}

// GetQRCode godoc
//
//	@Summary		Get referral QR code
//	@Description	PNG QR code encoding the user's referral link
//	@Tags			Referrals
//	@Security		BearerAuth
//	@Produce		png
//	@Success		200	{file}		file
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/referrals/qr [get]
func (h *ReferralHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	png, err := h.referralService.QRCode(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
