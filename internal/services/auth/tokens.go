package auth

import (
	"context"
	"errors"
	"time"

	"cinemahub/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokensDTO struct {
	AccessToken string `json:"access_token"`
}

type tokenClaims struct {
	UID   string        `json:"uid"`
	Email string        `json:"email"`
	Roles []models.Role `json:"roles"`
	jwt.RegisteredClaims
}

func (a *AuthService) newToken(user *models.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UID:   user.ID.String(),
		Email: user.Email,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Authenticate validates an access token and resolves its bearer. The
// user row is reread so revoked accounts and stale role claims do not
// survive past the database state.
func (a *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	log := a.log.With("op", op)
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		log.Info("invalid token")
		return nil, ErrInvalidToken
	}
	uid, err := uuid.Parse(claims.UID)
	if err != nil {
		log.Info("malformed uid claim", "uid", claims.UID)
		return nil, ErrInvalidToken
	}
	user, err := a.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("token bearer no longer exists", "user_id", uid)
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
