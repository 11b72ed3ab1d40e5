package helper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ayush-478/Veggio/models"
)

const (
	tokenTTL        = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour

	AccessToken  = "access"
	RefreshToken = "refresh"
)

type SignedDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Uid   string `json:"uid"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateAllTokens creates the access and refresh tokens of a user.
func GenerateAllTokens(secret string, user *models.User) (signedToken string, signedRefreshToken string, err error) {
	now := time.Now()
	claims := &SignedDetails{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		Uid:   user.ID.Hex(),
		Type:  AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	refreshClaims := &SignedDetails{
		Uid:  user.ID.Hex(),
		Type: RefreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenTTL)),
		},
	}

	signedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	signedRefreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signedToken, signedRefreshToken, nil
}

// ValidateToken checks the signature, expiry and type of a token.
func ValidateToken(secret, signedToken, tokenType string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("the token is invalid")
	}
	if claims.Type != tokenType {
		return nil, fmt.Errorf("expected a %s token", tokenType)
	}
	if claims.Uid == "" {
		return nil, errors.New("the token has no subject")
	}
	return claims, nil
}
