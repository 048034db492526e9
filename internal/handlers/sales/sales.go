package sales

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/dto"
	saleservice "github.com/developeragencia/valecash/internal/service/saleservice"
	"github.com/developeragencia/valecash/internal/settlement"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/developeragencia/valecash/pkg/utils"
	"github.com/developeragencia/valecash/pkg/validate"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	RegisterSale(ctx context.Context, req saleservice.RegisterSaleRequest) (*domain.Sale, error)
	GetSales(ctx context.Context, merchantID int) ([]domain.Sale, error)
	MerchantByUserID(ctx context.Context, userID int) (*domain.Merchant, error)
}

type SaleHandler struct {
	saleService Service
	validate    *validator.Validate
}

func New(saleService Service) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		validate:    validator.New(),
	}
}

// RegisterSale godoc
//
//	@Summary		Register a sale
//	@Description	Register a sale for a client and settle it. Cash and card sales settle immediately; gateway sales stay pending until payment confirmation. Retrying with the same sale_id returns the stored sale without double-crediting.
//	@Tags			Sales
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterSaleRequestDTO	true	"Sale to register"
//	@Success		200		{object}	dto.SaleResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Client not found"
//	@Failure		422		{object}	utils.Response	"Settlement validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/merchant/sales [post]
func (h *SaleHandler) RegisterSale(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.RegisterSaleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.PaymentMethod == domain.PaymentMethodCard && !validate.IsLuhn(req.CardNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid card number")
		return
	}

	merchant, err := h.saleService.MerchantByUserID(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Merchant profile not found")
		return
	}

	sale, err := h.saleService.RegisterSale(r.Context(), saleservice.RegisterSaleRequest{
		SaleID:        req.SaleID,
		MerchantID:    merchant.ID,
		ClientID:      req.ClientID,
		GrossAmount:   req.GrossAmount,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var vErr *settlement.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, vErr.Error())
		case errors.Is(err, saleservice.ErrClientNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, saleservice.ErrMerchantInactive):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, saleservice.ErrInvalidPaymentMethod):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toSaleResponse(sale))
}

// GetSales godoc
//
//	@Summary		Get merchant sales
//	@Description	List the sales registered by the authenticated merchant, newest first, with their settlement breakdowns
//	@Tags			Sales
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.SaleResponseDTO
//	@Success		204	{object}	utils.Response	"No sales"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/merchant/sales [get]
func (h *SaleHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	merchant, err := h.saleService.MerchantByUserID(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Merchant profile not found")
		return
	}

	sales, err := h.saleService.GetSales(r.Context(), merchant.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(sales) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No sales")
		return
	}

	response := make([]dto.SaleResponseDTO, len(sales))
	for i, sale := range sales {
		response[i] = toSaleResponse(&sale)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toSaleResponse(sale *domain.Sale) dto.SaleResponseDTO {
	return dto.SaleResponseDTO{
		ID:            sale.ID,
		ClientID:      sale.ClientID,
		GrossAmount:   sale.GrossAmount,
		Discount:      sale.Discount,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		Breakdown: dto.SettlementBreakdownDTO{
			NetAmount:          sale.Breakdown.NetAmount,
			PlatformFee:        sale.Breakdown.PlatformFee,
			CashbackAmount:     sale.Breakdown.CashbackAmount,
			MerchantReceives:   sale.Breakdown.MerchantReceives,
			ReferralCommission: sale.Breakdown.ReferralCommission,
		},
		CreatedAt: sale.CreatedAt,
	}
}
