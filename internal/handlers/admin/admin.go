package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/dto"
	salerepo "github.com/developeragencia/valecash/internal/repo/sale-repo"
	merchantservice "github.com/developeragencia/valecash/internal/service/merchantservice"
	saleservice "github.com/developeragencia/valecash/internal/service/saleservice"
	"github.com/developeragencia/valecash/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListLedger(ctx context.Context) ([]domain.LedgerEntry, error)
}

type SaleService interface {
	CancelSale(ctx context.Context, saleID string) (*domain.Sale, error)
}

type MerchantService interface {
	SetActive(ctx context.Context, merchantID int, active bool) (*domain.Merchant, error)
}

type ReportService interface {
	PlatformReport(ctx context.Context) (*salerepo.PlatformReport, error)
	ExportPlatformReport(ctx context.Context) ([]byte, error)
}

type AdminHandler struct {
	adminService    Service
	saleService     SaleService
	merchantService MerchantService
	reportService   ReportService
}

func New(adminService Service, saleService SaleService, merchantService MerchantService, reportService ReportService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		saleService:     saleService,
		merchantService: merchantService,
		reportService:   reportService,
	}
}

// ListUsers godoc
//
//	@Summary		List users
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.UserDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not an admin"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.UserDTO, len(users))
	for i, user := range users {
		response[i] = dto.UserDTO{
			ID:           user.ID,
			Login:        user.Login,
			Role:         user.Role,
			ReferralCode: user.ReferralCode,
			ReferredBy:   user.ReferredBy,
			CreatedAt:    user.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListLedger godoc
//
//	@Summary		List ledger entries
//	@Description	Most recent settlement audit entries across the whole platform
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerEntryDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not an admin"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/ledger [get]
func (h *AdminHandler) ListLedger(w http.ResponseWriter, r *http.Request) {
	entries, err := h.adminService.ListLedger(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
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

// CancelSale godoc
//
//	@Summary		Cancel a sale
//	@Description	Cancel a pending or completed sale. Completed sales have exactly their persisted settlement amounts reversed; balances may go negative.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Sale id"
//	@Success		200	{object}	utils.Response	"Sale cancelled"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not an admin"
//	@Failure		404	{object}	utils.Response	"Sale not found"
//	@Failure		409	{object}	utils.Response	"Sale already cancelled"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/sales/{id}/cancel [post]
func (h *AdminHandler) CancelSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "id")

	_, err := h.saleService.CancelSale(r.Context(), saleID)
	if err != nil {
		switch {
		case errors.Is(err, saleservice.ErrSaleNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, saleservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Sale cancelled"})
}

// SetMerchantActive godoc
//
//	@Summary		Activate or deactivate a merchant
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Merchant id"
//	@Param			request	body		dto.SetMerchantActiveDTO	true	"Desired state"
//	@Success		200		{object}	dto.MerchantSettingsDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not an admin"
//	@Failure		404		{object}	utils.Response	"Merchant not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/merchants/{id} [put]
func (h *AdminHandler) SetMerchantActive(w http.ResponseWriter, r *http.Request) {
	merchantID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid merchant id")
		return
	}

	var req dto.SetMerchantActiveDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	merchant, err := h.merchantService.SetActive(r.Context(), merchantID, req.Active)
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

// GetReport godoc
//
//	@Summary		Get platform report
//	@Description	Aggregated totals across all completed sales: fee revenue, cashback credited, referral commission paid
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.PlatformReportDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not an admin"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/report [get]
func (h *AdminHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.PlatformReport(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PlatformReportDTO{
		SalesCount:     report.SalesCount,
		GrossTotal:     report.GrossTotal,
		NetTotal:       report.NetTotal,
		FeeTotal:       report.FeeTotal,
		CashbackTotal:  report.CashbackTotal,
		CommissionPaid: report.CommissionPaid,
	})
}

// ExportReport godoc
//
//	@Summary		Export platform report
//	@Description	Download the platform report as an XLSX workbook
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200	{file}		file
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not an admin"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/report/export [get]
func (h *AdminHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.reportService.ExportPlatformReport(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="platform-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}
