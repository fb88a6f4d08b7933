// Package circle 封装与社区平台（Circle.so）REST API 的交互
//
// 成员资料、发帖/评论计数、标签和空间归属均以该平台为权威来源，
// 本服务只读写自身的游戏化数据。
package circle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"arena/pkg/logger"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNotMember 平台查无此成员
	ErrNotMember = errors.New("member not found in community")
	// ErrUpstream 平台暂时不可用
	ErrUpstream = errors.New("community platform unavailable")
)

// Config 客户端配置
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
}

// Client Circle API 客户端
type Client struct {
	client  *resty.Client
	baseURL string
	token   string
}

// NewClient 创建客户端实例，配置不完整时返回 nil
func NewClient(config *Config) *Client {
	if config == nil || config.BaseURL == "" || config.Token == "" {
		return nil
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Client{
		client:  client,
		baseURL: config.BaseURL,
		token:   config.Token,
	}
}

// request 统一设置认证头
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Token %s", c.token)).
		SetHeader("Content-Type", "application/json")
}

// GetMemberByEmail 按邮箱查询成员
func (c *Client) GetMemberByEmail(ctx context.Context, email string) (*Member, error) {
	resp, err := c.request(ctx).
		SetQueryParam("email", email).
		Get(fmt.Sprintf("%s/api/v1/community_members/search", c.baseURL))
	if err != nil {
		logger.ErrorString("Circle", "Search", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// 兼容两种返回：对象或带 records 的列表
		var member Member
		if err := json.Unmarshal(resp.Body(), &member); err == nil && member.ID != 0 {
			return &member, nil
		}
		var search searchResponse
		if err := json.Unmarshal(resp.Body(), &search); err != nil {
			return nil, fmt.Errorf("failed to unmarshal member response: %w", err)
		}
		if len(search.Records) == 0 {
			return nil, ErrNotMember
		}
		return &search.Records[0], nil
	case http.StatusNotFound:
		return nil, ErrNotMember
	default:
		logger.ErrorString("Circle", "Search", fmt.Sprintf(
			"邮箱 %s 查询失败 状态:%d 响应:%s", email, resp.StatusCode(), resp.String()))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}
}

// InviteMember 将用户注册进社区
func (c *Client) InviteMember(ctx context.Context, req *MemberRequest) (*Member, error) {
	resp, err := c.request(ctx).
		SetBody(req).
		Post(fmt.Sprintf("%s/api/v1/community_members", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("%w: invite returned status %d", ErrUpstream, resp.StatusCode())
	}

	var member Member
	if err := json.Unmarshal(resp.Body(), &member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invite response: %w", err)
	}

	logger.InfoString("Circle", "Invite", fmt.Sprintf(
		"成员注册成功 email:%s circle_id:%d", member.Email, member.ID))
	return &member, nil
}

// UpdateMember 更新成员资料字段
func (c *Client) UpdateMember(ctx context.Context, memberID int64, req *MemberRequest) (*Member, error) {
	resp, err := c.request(ctx).
		SetBody(req).
		Put(fmt.Sprintf("%s/api/v1/community_members/%d", c.baseURL, memberID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		var member Member
		if err := json.Unmarshal(resp.Body(), &member); err != nil {
			return nil, fmt.Errorf("failed to unmarshal update response: %w", err)
		}
		return &member, nil
	case http.StatusNotFound:
		return nil, ErrNotMember
	default:
		return nil, fmt.Errorf("%w: update returned status %d", ErrUpstream, resp.StatusCode())
	}
}

// RemoveMember 将成员移出社区，账号注销时调用
func (c *Client) RemoveMember(ctx context.Context, memberID int64) error {
	resp, err := c.request(ctx).
		Delete(fmt.Sprintf("%s/api/v1/community_members/%d", c.baseURL, memberID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 404 视为已删除
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent &&
		resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("%w: remove returned status %d", ErrUpstream, resp.StatusCode())
	}
	return nil
}

// GetMemberSpaces 获取成员加入的空间列表
func (c *Client) GetMemberSpaces(ctx context.Context, memberID int64) ([]MemberSpace, error) {
	resp, err := c.request(ctx).
		Get(fmt.Sprintf("%s/api/v1/community_members/%d/spaces", c.baseURL, memberID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: spaces returned status %d", ErrUpstream, resp.StatusCode())
	}

	var spaces []MemberSpace
	if err := json.Unmarshal(resp.Body(), &spaces); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spaces response: %w", err)
	}
	return spaces, nil
}

// HealthCheck 探测平台可用性
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.request(ctx).
		Get(fmt.Sprintf("%s/api/v1/me", c.baseURL))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}
	return nil
}
