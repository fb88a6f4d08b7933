// Package google 处理 Google OAuth2 登录
//
// 支持两条路径：授权码回调（服务端跳转）和前端直接提交的
// ID Token 凭证，两者最终都归一为一份邮箱身份。
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"arena/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const (
	authEndpoint      = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint     = "https://oauth2.googleapis.com/token"
	tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"
)

var (
	// ErrInvalidToken ID Token 无效或不属于本应用
	ErrInvalidToken = errors.New("invalid google id token")
	// ErrExchangeFailed 授权码换取令牌失败
	ErrExchangeFailed = errors.New("google code exchange failed")
)

// Config OAuth 应用配置
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
}

// Service Google OAuth 服务
type Service struct {
	client *resty.Client
	config *Config
}

// NewService 创建服务实例，配置不完整时返回 nil
func NewService(config *Config) *Service {
	if config == nil || config.ClientID == "" || config.ClientSecret == "" {
		return nil
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Service{
		client: client,
		config: config,
	}
}

// AuthURL 生成授权页地址
func (s *Service) AuthURL(state string) string {
	query := url.Values{}
	query.Set("client_id", s.config.ClientID)
	query.Set("redirect_uri", s.config.RedirectURL)
	query.Set("response_type", "code")
	query.Set("scope", "openid email profile")
	query.Set("access_type", "offline")
	query.Set("prompt", "consent")
	query.Set("state", state)

	return authEndpoint + "?" + query.Encode()
}

// Tokens 授权码交换的结果
type Tokens struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode 用授权码换取令牌
func (s *Service) ExchangeCode(ctx context.Context, code string) (*Tokens, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     s.config.ClientID,
			"client_secret": s.config.ClientSecret,
			"redirect_uri":  s.config.RedirectURL,
			"grant_type":    "authorization_code",
		}).
		Post(tokenEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	if resp.StatusCode() != http.StatusOK {
		logger.ErrorString("Google", "Exchange", fmt.Sprintf(
			"授权码交换失败 状态:%d 响应:%s", resp.StatusCode(), resp.String()))
		return nil, fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode())
	}

	var tokens Tokens
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	return &tokens, nil
}

// Identity 验证通过的 Google 身份
type Identity struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// tokenInfo tokeninfo 接口的响应
type tokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// VerifyIDToken 校验 ID Token 并提取身份
// 通过 Google 的 tokeninfo 接口校验，会检查受众是否为本应用
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		Get(tokenInfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var info tokenInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// 受众必须是本应用，防止拿别家应用的 token 冒充
	if info.Aud != s.config.ClientID {
		logger.WarnString("Google", "Verify", "ID Token 受众不匹配，已拒绝")
		return nil, ErrInvalidToken
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		Sub:     info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
