package service

import (
	"github.com/developeragencia/valecash/internal/handlers/admin"
	"github.com/developeragencia/valecash/internal/handlers/auth"
	"github.com/developeragencia/valecash/internal/handlers/balances"
	"github.com/developeragencia/valecash/internal/handlers/referrals"

	pkgauth "github.com/developeragencia/valecash/pkg/auth"

	"github.com/developeragencia/valecash/internal/cache"
	"github.com/developeragencia/valecash/internal/pg"
	"github.com/developeragencia/valecash/internal/repo"
	adminservice "github.com/developeragencia/valecash/internal/service/adminservice"
	authservice "github.com/developeragencia/valecash/internal/service/authservice"
	balanceservice "github.com/developeragencia/valecash/internal/service/balanceservice"
	merchantservice "github.com/developeragencia/valecash/internal/service/merchantservice"
	referralservice "github.com/developeragencia/valecash/internal/service/referralservice"
	reportservice "github.com/developeragencia/valecash/internal/service/reportservice"
	saleservice "github.com/developeragencia/valecash/internal/service/saleservice"
)

type Services struct {
	AuthService     auth.Service
	SaleService     *saleservice.Service
	BalanceService  balances.Service
	MerchantService *merchantservice.Service
	ReferralService referrals.Service
	ReportService   *reportservice.Service
	AdminService    admin.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, c cache.Cache, publicBaseURL string) *Services {
	balanceService := balanceservice.New(repo.BalanceRepo, repo.LedgerRepo)
	merchantService := merchantservice.New(repo.MerchantRepo)
	saleService := saleservice.New(repo.SaleRepo, repo.BalanceRepo, repo.UserRepo, repo.MerchantRepo, repo.LedgerRepo, txManager)
	reportService := reportservice.New(repo.SaleRepo, c)
	saleService.SetInvalidator(reportService)
	referralService := referralservice.New(repo.UserRepo, repo.LedgerRepo, publicBaseURL)
	adminService := adminservice.New(repo.UserRepo, repo.LedgerRepo)
	authService := authservice.New(repo.UserRepo, repo.MerchantRepo, balanceService, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:     authService,
		SaleService:     saleService,
		BalanceService:  balanceService,
		MerchantService: merchantService,
		ReferralService: referralService,
		ReportService:   reportService,
		AdminService:    adminService,
	}
}
