// Package token 签发和校验管理端使用的 JWT。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleAdmin 是管理员角色，目前也是唯一会被签发的角色。
	RoleAdmin = "ADMIN"
	// Issuer 写入 iss 声明，校验时不匹配的 token 一律拒绝。
	Issuer = "aqua-health"
)

// ErrInvalidToken 表示 token 无法解析、签名不符、已过期或签发方不符。
var ErrInvalidToken = errors.New("invalid token")

// JWTManager 负责管理 JWT 的生成和验证。
type JWTManager struct {
	secretKey []byte
	ttl       time.Duration
	parser    *jwt.Parser
}

// CustomClaims 是写入 token 的声明。Subject 与 Username 相同。
type CustomClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建 JWTManager，有效期以小时计。
func NewJWTManager(secret string, accessTokenExpireHours int) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secret),
		ttl:       time.Hour * time.Duration(accessTokenExpireHours),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateToken 为指定用户签发 access token。
func (m *JWTManager) GenerateToken(username, role string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken 校验 token 并返回其声明，失败时返回包装了 ErrInvalidToken 的错误。
func (m *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	parsed, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
