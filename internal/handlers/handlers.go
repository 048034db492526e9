package handlers

import (
	"net/http"

	_ "github.com/developeragencia/valecash/docs"
	"github.com/developeragencia/valecash/internal/domain"
	adminhandlers "github.com/developeragencia/valecash/internal/handlers/admin"
	authhandlers "github.com/developeragencia/valecash/internal/handlers/auth"
	balancehandlers "github.com/developeragencia/valecash/internal/handlers/balances"
	merchanthandlers "github.com/developeragencia/valecash/internal/handlers/merchants"
	referralhandlers "github.com/developeragencia/valecash/internal/handlers/referrals"
	saleshandlers "github.com/developeragencia/valecash/internal/handlers/sales"
	"github.com/developeragencia/valecash/internal/service"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type SaleHandler interface {
	RegisterSale(w http.ResponseWriter, r *http.Request)
	GetSales(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
}

type MerchantHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetQRCode(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	ListLedger(w http.ResponseWriter, r *http.Request)
	CancelSale(w http.ResponseWriter, r *http.Request)
	SetMerchantActive(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
	ExportReport(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	SaleHandler     SaleHandler
	BalanceHandler  BalanceHandler
	MerchantHandler MerchantHandler
	ReferralHandler ReferralHandler
	AdminHandler    AdminHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		SaleHandler:     saleshandlers.New(s.SaleService),
		BalanceHandler:  balancehandlers.New(s.BalanceService),
		MerchantHandler: merchanthandlers.New(s.MerchantService, s.ReportService),
		ReferralHandler: referralhandlers.New(s.ReferralService),
		AdminHandler:    adminhandlers.New(s.AdminService, s.SaleService, s.MerchantService, s.ReportService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/user", func(r chi.Router) {
				r.Get("/balance", h.BalanceHandler.GetBalance)
				r.Get("/ledger", h.BalanceHandler.GetLedger)
				r.Route("/referrals", func(r chi.Router) {
					r.Get("/", h.ReferralHandler.GetStats)
					r.Get("/qr", h.ReferralHandler.GetQRCode)
				})
			})

			r.Route("/merchant", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleMerchant))
				r.Route("/sales", func(r chi.Router) {
					r.Post("/", h.SaleHandler.RegisterSale)
					r.Get("/", h.SaleHandler.GetSales)
				})
				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.MerchantHandler.GetSettings)
					r.Put("/", h.MerchantHandler.UpdateSettings)
				})
				r.Get("/report", h.MerchantHandler.GetReport)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleAdmin))
				r.Get("/users", h.AdminHandler.ListUsers)
				r.Get("/ledger", h.AdminHandler.ListLedger)
				r.Post("/sales/{id}/cancel", h.AdminHandler.CancelSale)
				r.Put("/merchants/{id}", h.AdminHandler.SetMerchantActive)
				r.Get("/report", h.AdminHandler.GetReport)
				r.Get("/report/export", h.AdminHandler.ExportReport)
			})
		})
	})

	return r
}
