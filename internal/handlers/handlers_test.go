package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/developeragencia/valecash/docs"
	"github.com/developeragencia/valecash/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	h := New(&service.Services{})
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.SaleHandler)
	assert.NotNil(t, h.BalanceHandler)
	assert.NotNil(t, h.MerchantHandler)
	assert.NotNil(t, h.ReferralHandler)
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockSaleHandler := NewMockSaleHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockMerchantHandler := NewMockMerchantHandler(ctrl)
	mockReferralHandler := NewMockReferralHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		SaleHandler:     mockSaleHandler,
		BalanceHandler:  mockBalanceHandler,
		MerchantHandler: mockMerchantHandler,
		ReferralHandler: mockReferralHandler,
		AdminHandler:    mockAdminHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	// Everything behind the auth group returns 401 without a token.
	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/auth/register", http.StatusOK},
		{"POST", "/api/auth/login", http.StatusOK},
		{"GET", "/api/user/balance", http.StatusUnauthorized},
		{"GET", "/api/user/ledger", http.StatusUnauthorized},
		{"GET", "/api/user/referrals/", http.StatusUnauthorized},
		{"GET", "/api/user/referrals/qr", http.StatusUnauthorized},
		{"POST", "/api/merchant/sales/", http.StatusUnauthorized},
		{"GET", "/api/merchant/sales/", http.StatusUnauthorized},
		{"GET", "/api/merchant/settings/", http.StatusUnauthorized},
		{"PUT", "/api/merchant/settings/", http.StatusUnauthorized},
		{"GET", "/api/merchant/report", http.StatusUnauthorized},
		{"GET", "/api/admin/users", http.StatusUnauthorized},
		{"GET", "/api/admin/ledger", http.StatusUnauthorized},
		{"POST", "/api/admin/sales/1/cancel", http.StatusUnauthorized},
		{"PUT", "/api/admin/merchants/1", http.StatusUnauthorized},
		{"GET", "/api/admin/report", http.StatusUnauthorized},
		{"GET", "/api/admin/report/export", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
