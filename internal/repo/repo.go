package repo

import (
	"github.com/developeragencia/valecash/internal/pg"
	balancerepo "github.com/developeragencia/valecash/internal/repo/balance-repo"
	ledgerrepo "github.com/developeragencia/valecash/internal/repo/ledger-repo"
	merchantrepo "github.com/developeragencia/valecash/internal/repo/merchant-repo"
	salerepo "github.com/developeragencia/valecash/internal/repo/sale-repo"
	userrepo "github.com/developeragencia/valecash/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo     *userrepo.Repository
	MerchantRepo *merchantrepo.Repository
	SaleRepo     *salerepo.Repository
	BalanceRepo  *balancerepo.Repository
	LedgerRepo   *ledgerrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		MerchantRepo: merchantrepo.New(conn),
		SaleRepo:     salerepo.New(conn, txManager),
		BalanceRepo:  balancerepo.New(conn, txManager),
		LedgerRepo:   ledgerrepo.New(conn),
	}
}
