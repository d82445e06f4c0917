package commands

import (
	"context"
	"log/slog"

	"sponsorship-api/internal/domain/user"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/pkg/jwt"
	"sponsorship-api/internal/pkg/password"
	"sponsorship-api/internal/usecase/queries"
	"sponsorship-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	users      UserRepository
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	pool       *pgxpool.Pool
}

func NewAuthCommands(users UserRepository, readStore queries.UserReadStore, jwtService *jwt.Service, pool *pgxpool.Pool) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		readStore:  readStore,
		jwtService: jwtService,
		pool:       pool,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	normalized, err := user.NewEmail(email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	credential, err := a.readStore.FindByEmail(ctx, normalized.String())
	if err != nil {
		// Do not leak whether the account exists
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}
	if !credential.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.Compare(credential.PasswordHash, plainPassword); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(credential.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	accessToken, err := a.jwtService.GenerateAccessToken(credential.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(credential.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	_, err = shared.RunInTx(ctx, a.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, a.users.UpdateLastLogin(ctx, tx, credential.ID)
	})
	if err != nil {
		// Not critical; login already succeeded
		slog.Warn("failed to update last login", "user_id", credential.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID: credential.ID,
		Role:   role,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate user still exists and is active
	view, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := a.jwtService.GenerateAccessToken(claims.UserID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	newRefreshToken, err := a.jwtService.GenerateRefreshToken(claims.UserID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}
