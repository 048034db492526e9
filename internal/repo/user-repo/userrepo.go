package userrepo

import (
	"context"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx,
		"SELECT id, login, password_hash, role, referral_code, referred_by FROM users WHERE login = $1",
		login,
	).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.ReferralCode, &user.ReferredBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx,
		"SELECT id, login, password_hash, role, referral_code, referred_by FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.ReferralCode, &user.ReferredBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx,
		"SELECT id, login, password_hash, role, referral_code, referred_by FROM users WHERE referral_code = $1",
		code,
	).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.ReferralCode, &user.ReferredBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by referral code", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (login, password_hash, role, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := repo.db.QueryRow(ctx, query, user.Login, user.PasswordHash, user.Role, user.ReferralCode, user.ReferredBy).Scan(&user.ID)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindAll(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT id, login, password_hash, role, referral_code, referred_by, created_at
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.ReferralCode, &user.ReferredBy, &user.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (repo *Repository) FindReferredBy(ctx context.Context, referrerID int) ([]domain.User, error) {
	query := `
		SELECT id, login, password_hash, role, referral_code, referred_by, created_at
		FROM users
		WHERE referred_by = $1
		ORDER BY created_at DESC
	`
	rows, err := repo.db.Query(ctx, query, referrerID)
	if err != nil {
		zap.L().Error("can't get referred users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.ReferralCode, &user.ReferredBy, &user.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan referred user row", zap.Error(err))
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
