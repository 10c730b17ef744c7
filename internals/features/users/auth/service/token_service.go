// file: internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/configs"
	authModel "github.com/beerappa88/University-Finance-Application/internals/features/users/auth/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

func signingMethod() jwt.SigningMethod {
	// HS256 unless configured otherwise
	if m := jwt.GetSigningMethod(configs.JWTAlgorithm); m != nil {
		return m
	}
	return jwt.SigningMethodHS256
}

// IssueAccessToken signs a short-lived access token carrying the caller's
// identity, tenant and effective permission set.
func IssueAccessToken(userID, collegeID uuid.UUID, permissions []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         userID.String(),
		"college_id":  collegeID.String(),
		"permissions": permissions,
		"iat":         now.Unix(),
		"exp":         now.Add(configs.AccessTokenExpiry).Unix(),
	}
	return jwt.NewWithClaims(signingMethod(), claims).SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken signs a refresh token and stores its HMAC hash for
// rotation checks.
func IssueRefreshToken(db *gorm.DB, userID uuid.UUID, userAgent, ip *string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(configs.RefreshTokenExpiry)
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(signingMethod(), claims).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", err
	}

	row := &authModel.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(token, configs.JWTRefreshSecret),
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := db.Create(row).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeRefreshToken validates a refresh token, checks the stored hash and
// deletes it (single use). Returns the subject user id.
func ConsumeRefreshToken(db *gorm.DB, rawToken string) (uuid.UUID, error) {
	tok, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, errs.Denied("refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errs.Denied("refresh token invalid")
	}

	hash := hashToken(rawToken, configs.JWTRefreshSecret)
	res := db.Where("token_hash = ? AND expires_at > ?", hash, time.Now()).
		Delete(&authModel.RefreshToken{})
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, errs.Denied("refresh token unknown or already used")
	}
	return userID, nil
}

// RevokeRefreshTokens drops every stored refresh token for a user (logout).
func RevokeRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshToken{}).Error
}

func hashToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
