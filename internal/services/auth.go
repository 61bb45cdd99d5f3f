package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/domain"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/requestdata"
	"github.com/mathfacts/backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, name, pin string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
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
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	const op = "AuthService.RegisterUser"

	if user == nil {
		return domain.NewError(domain.CodeValidation, op, "no user given", nil)
	}
	user.Name = strings.TrimSpace(user.Name)
	user.Pin = strings.TrimSpace(user.Pin)
	if user.Name == "" {
		return domain.NewError(domain.CodeValidation, op, "a name is required to register", nil)
	}
	if user.Pin == "" {
		return domain.NewError(domain.CodeValidation, op, "a pin is required to register", nil)
	}

	exists, err := as.userRepo.NameExists(ctx, nil, user.Name)
	if err != nil {
		return domain.Wrap(domain.CodeRetryable, op, err)
	}
	if exists {
		return domain.NewError(domain.CodeConflict, op, "name is already in use", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Pin), bcrypt.DefaultCost)
	if err != nil {
		return domain.Wrap(domain.CodeInternal, op, err)
	}
	user.Pin = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if user.Level == 0 {
			user.Level = types.LevelOne
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, name, pin string) (string, string, error) {
	const op = "AuthService.LoginUser"

	name = strings.TrimSpace(name)
	pin = strings.TrimSpace(pin)
	if name == "" || pin == "" {
		return "", "", domain.NewError(domain.CodeValidation, op, "name and pin are required to login", nil)
	}

	users, err := as.userRepo.GetByNames(ctx, nil, []string{name})
	if err != nil {
		return "", "", domain.Wrap(domain.CodeRetryable, op, err)
	}
	if len(users) == 0 {
		return "", "", domain.NewError(domain.CodeUnauthorized, op, "invalid name or pin", nil)
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Pin), []byte(pin)); err != nil {
		return "", "", domain.NewError(domain.CodeUnauthorized, op, "invalid name or pin", nil)
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		stale := make([]uuid.UUID, 0, len(existing))
		for _, tok := range existing {
			stale = append(stale, tok.ID)
		}
		if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, stale); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return domain.Wrap(domain.CodeInternal, op, err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()

		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	const op = "AuthService.RefreshUser"

	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", domain.NewError(domain.CodeUnauthorized, op, "no refresh token in request context", nil)
	}

	var accessToken, refreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		if len(found) == 0 {
			return domain.NewError(domain.CodeUnauthorized, op, "unknown refresh token", nil)
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
				return domain.Wrap(domain.CodeRetryable, op, err)
			}
			return domain.NewError(domain.CodeUnauthorized, op, "refresh token expired", nil)
		}

		users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		if len(users) == 0 {
			return domain.NewError(domain.CodeUnauthorized, op, "no user for refresh token", nil)
		}
		user := users[0]

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return domain.Wrap(domain.CodeInternal, op, err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()

		newToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newToken}); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	const op = "AuthService.LogoutUser"

	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return domain.NewError(domain.CodeUnauthorized, op, "no token in request context", nil)
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		if len(found) == 0 {
			return nil
		}
		if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID}); err != nil {
			return domain.Wrap(domain.CodeRetryable, op, err)
		}
		return nil
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "AuthService.SetContextFromToken"

	if tokenString == "" {
		return ctx, domain.NewError(domain.CodeUnauthorized, op, "missing token", nil)
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, domain.NewError(domain.CodeUnauthorized, op, "invalid or expired token", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, domain.NewError(domain.CodeUnauthorized, op, "invalid or expired token", nil)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, domain.NewError(domain.CodeUnauthorized, op, "invalid user id in token", err)
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	found, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if err != nil {
		return ctx, domain.Wrap(domain.CodeRetryable, op, err)
	}
	if len(found) > 0 {
		rd.RefreshToken = found[0].RefreshToken
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
