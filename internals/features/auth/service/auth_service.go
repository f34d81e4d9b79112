package service

import (
	"errors"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"

	"learnify_backend/internals/configs"
	"learnify_backend/internals/middlewares/auth"
)

var ErrInvalidGoogleToken = errors.New("invalid google id token")

const tokenTTL = 7 * 24 * time.Hour

// GoogleProfile is the subset of the Google claim set the platform keeps.
type GoogleProfile struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

// VerifyGoogleToken checks the id token signature and audience against the
// configured OAuth client and returns the identity claims.
func (s *AuthService) VerifyGoogleToken(idToken string) (*GoogleProfile, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, ErrInvalidGoogleToken
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	if claims.Sub == "" {
		return nil, ErrInvalidGoogleToken
	}

	return &GoogleProfile{
		Sub:     claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// RoleFor assigns the role at mint time. Admins are the configured allowlist;
// everyone else is a learner. The role rides in the token from here on.
func (s *AuthService) RoleFor(email string) string {
	if configs.IsAdminEmail(email) {
		return auth.RoleAdmin
	}
	return auth.RoleLearner
}

// MintToken issues the platform JWT carrying sub/name/email/role.
func (s *AuthService) MintToken(sub, name, email, role string) (string, time.Time, error) {
	if configs.JWTSecret == "" {
		return "", time.Time{}, errors.New("missing JWT secret")
	}

	exp := time.Now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"name":  name,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
