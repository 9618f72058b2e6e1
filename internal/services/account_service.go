package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edupath/internal/models/db_models"
	"edupath/internal/models/request_models"
	"edupath/internal/models/response_models"
	"edupath/internal/repositories"
	mem "edupath/pkg/memcache"
	"edupath/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*response_models.AccountResponse, error)
	UpdateMe(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenIssuer
	store       mem.TTLStore
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, store mem.TTLStore, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		store:       store,
		log:         log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		Name:         strings.TrimSpace(request.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleStudent,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("Account registered", zap.String("user_id", account.ID.String()))
	return a.issue(account)
}

// Login reports unknown emails and wrong passwords the same way.
func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return a.issue(account)
}

func (a *AccountService) issue(account *db_models.Account) (*response_models.AuthResponse, error) {
	token, err := a.tokens.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &response_models.AuthResponse{
		Token: token,
		User:  response_models.ToAccountResponse(account),
	}, nil
}

func (a *AccountService) Me(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	account, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := response_models.ToAccountResponse(account)
	return &resp, nil
}

func (a *AccountService) UpdateMe(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	account, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		account.Name = strings.TrimSpace(*request.Name)
	}
	if request.Email != nil {
		email := normalizeEmail(*request.Email)
		if email != account.Email {
			existing, err := a.accountRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
			}
			if existing != nil {
				return nil, utils.ErrEmailAlreadyExists
			}
			account.Email = email
		}
	}
	if request.Password != nil {
		hashed, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hashed
	}

	if err := a.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := response_models.ToAccountResponse(account)
	return &resp, nil
}

// Logout denies the token id until the token would have expired anyway.
func (a *AccountService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return utils.ErrUnauthorized
	}
	ttl := time.Until(expiresAt)
	if expiresAt.IsZero() {
		ttl = a.tokens.TTL()
	}
	if ttl <= 0 {
		return nil
	}
	if err := a.store.Set(ctx, mem.RevokedTokenKey(tokenID), "1", ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (a *AccountService) load(ctx context.Context, userID string) (*db_models.Account, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}
