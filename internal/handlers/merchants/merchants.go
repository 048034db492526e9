package merchants

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/dto"
	salerepo "github.com/developeragencia/valecash/internal/repo/sale-repo"
	merchantservice "github.com/developeragencia/valecash/internal/service/merchantservice"
	"github.com/developeragencia/valecash/internal/settlement"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/developeragencia/valecash/pkg/utils"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	GetSettings(ctx context.Context, userID int) (*domain.Merchant, error)
	UpdateSettings(ctx context.Context, userID int, storeName string, bonusRate float64) (*domain.Merchant, error)
}

type ReportService interface {
	MerchantReport(ctx context.Context, merchantID int) (*salerepo.MerchantReport, error)
}

type MerchantHandler struct {
	merchantService Service
	reportService   ReportService
	validate        *validator.Validate
}

func New(merchantService Service, reportService ReportService) *MerchantHandler {
	return &MerchantHandler{
		merchantService: merchantService,
		reportService:   reportService,
		validate:        validator.New(),
	}
}

// GetSettings godoc
//
//	@Summary		Get store settings
//	@Description	Retrieve the authenticated merchant's store settings, including its cashback bonus rate
//	@Tags			Merchant
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.MerchantSettingsDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Merchant not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/merchant/settings [get]
func (h *MerchantHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	merchant, err := h.merchantService.GetSettings(r.Context(), userID)
	if err != nil {
		if errors.Is(err, merchantservice.ErrMerchantNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.MerchantSettingsDTO{
		StoreName: merchant.StoreName,
		BonusRate: merchant.BonusRate,
		Active:    merchant.Active,
	})
}

// UpdateSettings godoc
//
//	@Summary		Update store settings
//	@Description	Update store name and bonus cashback rate. Rates outside [0, 0.10] are rejected, not clamped.
//	@Tags			Merchant
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateMerchantSettingsDTO	true	"Settings to apply"
//	@Success		200		{object}	dto.MerchantSettingsDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Merchant not found"
//	@Failure		422		{object}	utils.Response	"Bonus rate out of range"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/merchant/settings [put]
func (h *MerchantHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.UpdateMerchantSettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	merchant, err := h.merchantService.UpdateSettings(r.Context(), userID, req.StoreName, req.BonusRate)
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrInvalidBonusRate):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, merchantservice.ErrMerchantNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.MerchantSettingsDTO{
		StoreName: merchant.StoreName,
		BonusRate: merchant.BonusRate,
		Active:    merchant.Active,
	})
}

// GetReport godoc
//
//	@Summary		Get merchant sales report
//	@Description	Aggregated totals over the merchant's completed sales. Served from cache when fresh.
//	@Tags			Merchant
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.MerchantReportDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Merchant not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/merchant/report [get]
func (h *MerchantHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	merchant, err := h.merchantService.GetSettings(r.Context(), userID)
	if err != nil {
		if errors.Is(err, merchantservice.ErrMerchantNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	report, err := h.reportService.MerchantReport(r.Context(), merchant.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.MerchantReportDTO{
		SalesCount:       report.SalesCount,
		GrossTotal:       report.GrossTotal,
		NetTotal:         report.NetTotal,
		CashbackTotal:    report.CashbackTotal,
		MerchantReceives: report.MerchantReceives,
	})
}
