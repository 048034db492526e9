package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/handlers/balances"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type MerchantRepo interface {
	Create(ctx context.Context, merchant *domain.Merchant) (*domain.Merchant, error)
}

type Service struct {
	userRepo       Repo
	merchantRepo   MerchantRepo
	balanceService balances.Service
	hashService    auth.HashServiceInterface
	jwtService     auth.JWTServiceInterface
}

func New(repo Repo, merchantRepo MerchantRepo, balanceService balances.Service, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:       repo,
		merchantRepo:   merchantRepo,
		balanceService: balanceService,
		hashService:    hashService,
		jwtService:     jwtService,
	}
}

var (
	ErrLoginTaken  = errors.New("username already taken")
	ErrInvalidRole = errors.New("invalid role")
)

type RegisterRequest struct {
	Login        string
	Password     string
	Role         string
	StoreName    string
	ReferralCode string
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Role != domain.RoleClient && req.Role != domain.RoleMerchant {
		return nil, ErrInvalidRole
	}

	existingUser, err := s.userRepo.FindByLogin(ctx, req.Login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", req.Login))
		return nil, ErrLoginTaken
	}

	hashedPassword, err := s.hashService.HashPassword(req.Password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	// referred_by is set here, once, and never updated afterwards. It is
	// the sole key for lifetime referral commission attribution. An
	// unknown code does not fail the signup.
	var referredBy *int
	if req.ReferralCode != "" {
		referrer, err := s.userRepo.FindByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			zap.L().Error("can't resolve referral code: ", zap.Error(err))
			return nil, err
		}
		if referrer != nil {
			referredBy = &referrer.ID
		} else {
			zap.L().Info("unknown referral code ignored", zap.String("code", req.ReferralCode))
		}
	}

	user := &domain.User{
		Login:        req.Login,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		ReferralCode: newReferralCode(),
		ReferredBy:   referredBy,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	_, err = s.balanceService.CreateBalance(ctx, newUser.ID)
	if err != nil {
		zap.L().Error("can't create balance: ", zap.Error(err))
		return nil, err
	}

	if req.Role == domain.RoleMerchant {
		_, err = s.merchantRepo.Create(ctx, &domain.Merchant{
			UserID:    newUser.ID,
			StoreName: req.StoreName,
			Active:    true,
		})
		if err != nil {
			zap.L().Error("can't create merchant: ", zap.Error(err))
			return nil, err
		}
	}

	zap.L().Info("user successfully registered", zap.String("login", req.Login), zap.String("role", req.Role))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID int, role string) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(userID, role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
