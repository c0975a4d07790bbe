package service

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/pkg/hash"
	"aqua-health-go/pkg/log"
	"aqua-health-go/pkg/token"
	"errors"
)

// ErrInvalidCredentials 表示用户名或密码错误。
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 接口定义了管理员登录操作。管理员账号来自配置，没有用户表。
type AuthService interface {
	Login(username, password string) (string, error)
}

type authService struct {
	admin      config.AdminConfig
	jwtManager *token.JWTManager
}

// NewAuthService 创建一个新的 AuthService 实例。
func NewAuthService(admin config.AdminConfig, jwtManager *token.JWTManager) AuthService {
	return &authService{admin: admin, jwtManager: jwtManager}
}

// Login 校验管理员账号并签发 access token。未配置密码哈希时拒绝所有登录。
func (s *authService) Login(username, password string) (string, error) {
	if s.admin.PasswordHash == "" || username != s.admin.Username {
		return "", ErrInvalidCredentials
	}
	if !hash.CheckPasswordHash(password, s.admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	accessToken, err := s.jwtManager.GenerateToken(username, token.RoleAdmin)
	if err != nil {
		return "", err
	}
	log.Infof("管理员 '%s' 登录成功", username)
	return accessToken, nil
}
