package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/db"
	"github.com/yungbote/learnpath-backend/internal/data/repos"
	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/validate"
)

//go:generate mockgen -source=auth.go -destination=../mocks/services/mock_auth.go -package=mock_services

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type registerInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"notblank,max=100"`
	LastName  string `json:"last_name" validate:"notblank,max=100"`
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	validator     *validate.Validator
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	validator *validate.Validator,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		validator:     validator,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	if user == nil {
		return apierr.Invalid("invalid_request", errors.New("missing user"))
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	if err := as.validator.Struct(registerInput{
		Email:     user.Email,
		Password:  user.Password,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}); err != nil {
		return apierr.Invalid("invalid_request", err)
	}

	dbc := dbctx.Of(ctx)
	exists, err := as.userRepo.EmailExists(dbc, user.Email)
	if err != nil {
		return apierr.Storage("registration_failed", fmt.Errorf("check email: %w", err))
	}
	if exists {
		return apierr.Conflict("email_taken", "email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
		if db.IsUniqueViolation(err) {
			return apierr.Conflict("email_taken", "email is already registered")
		}
		return apierr.Storage("registration_failed", fmt.Errorf("create user: %w", err))
	}
	as.log.Info("user registered", "user_id", user.ID)
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", apierr.Invalid("invalid_request", errors.New("email and password are required"))
	}

	dbc := dbctx.Of(ctx)
	user, err := as.userRepo.GetByEmail(dbc, email)
	if err != nil {
		return "", "", apierr.Storage("login_failed", fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return "", "", apierr.Unauthenticated("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apierr.Unauthenticated("invalid email or password")
	}

	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{userToken}); err != nil {
		return "", "", apierr.Storage("login_failed", fmt.Errorf("create user token: %w", err))
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", apierr.Unauthenticated("missing refresh token")
	}

	var accessToken string
	var newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return apierr.Storage("refresh_failed", fmt.Errorf("load refresh token: %w", err))
		}
		if len(found) == 0 {
			return apierr.Unauthenticated("invalid refresh token")
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.SoftDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
				return apierr.Storage("refresh_failed", fmt.Errorf("delete expired token: %w", err))
			}
			return apierr.Unauthenticated("refresh token expired")
		}

		user, err := as.userRepo.GetByID(dbc, existing.UserID)
		if err != nil {
			return apierr.Storage("refresh_failed", fmt.Errorf("load user: %w", err))
		}
		if user == nil {
			return apierr.Unauthenticated("user no longer exists")
		}

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		next := &types.UserToken{
			UserID:       user.ID,
			AccessToken:  tok,
			RefreshToken: uuid.New().String(),
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{next}); err != nil {
			return apierr.Storage("refresh_failed", fmt.Errorf("create user token: %w", err))
		}
		if err := as.userTokenRepo.SoftDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return apierr.Storage("refresh_failed", fmt.Errorf("revoke old token: %w", err))
		}
		accessToken = tok
		newRefreshToken = next.RefreshToken
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.SessionID == uuid.Nil {
		return apierr.Unauthenticated("no active session")
	}
	if err := as.userTokenRepo.SoftDeleteByIDs(dbctx.Of(ctx), []uuid.UUID{rd.SessionID}); err != nil {
		return apierr.Storage("logout_failed", fmt.Errorf("revoke token: %w", err))
	}
	return nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates an access token and attaches the caller's
// RequestData. A token whose session was revoked is rejected.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthenticated("missing token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, apierr.Unauthenticated("invalid or expired token")
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthenticated("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthenticated("invalid token subject")
	}

	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Of(ctx), []string{tokenString})
	if err != nil {
		as.log.Warn("Error fetching user token by access token", "error", err)
		return ctx, apierr.Storage("auth_failed", fmt.Errorf("load session: %w", err))
	}
	if len(found) == 0 || found[0].UserID != userID {
		return ctx, apierr.Unauthenticated("session revoked")
	}

	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
		UserID:       userID,
		SessionID:    found[0].ID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

// requireUser returns the authenticated caller or a 401.
func requireUser(ctx context.Context) (uuid.UUID, error) {
	uid := ctxutil.UserID(ctx)
	if uid == uuid.Nil {
		return uuid.Nil, apierr.Unauthenticated("authentication required")
	}
	return uid, nil
}
