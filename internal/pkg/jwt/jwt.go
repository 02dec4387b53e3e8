package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken  = errors.New("invalid or non-access token")
	ErrMissingClaims = errors.New("token carries no user identity")
)

// Actor is the authenticated caller, used to attribute ledger entries.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// DisplayName prefers the human-readable name and falls back to the user id.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.UserID
}

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	// GenerateAccessToken mints an access token; issuance belongs to the
	// identity provider, this exists for operators and tests.
	GenerateAccessToken(userID, name, role string, ttl time.Duration) (token string, expiresAt int64, err error)
	ActorFromContext(ctx context.Context) (Actor, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, name, role string, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"name":    name,
		"role":    role,
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ActorFromContext reads the verified claims placed by jwtauth.Verifier.
func (j *JWTService) ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, err
	}

	actor := Actor{}
	actor.UserID, _ = claims["user_id"].(string)
	actor.Name, _ = claims["name"].(string)
	actor.Role, _ = claims["role"].(string)
	if actor.DisplayName() == "" {
		return Actor{}, ErrMissingClaims
	}
	return actor, nil
}
