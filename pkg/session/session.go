// Package session 基于 Redis 的服务端会话
//
// 会话对象整体 JSON 序列化后存入 Redis 主库，Cookie 只携带会话 ID，
// 默认 24 小时过期，刷新接口可以续期。
package session

import (
	"encoding/json"
	"errors"
	"time"

	"arena/pkg/app"
	"arena/pkg/config"
	"arena/pkg/logger"
	"arena/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrNotAuthenticated 请求未携带有效会话
var ErrNotAuthenticated = errors.New("no valid session")

// Session 服务端会话对象，大多数接口以它作为隐式身份来源
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ProfileID uint64    `json:"profile_id"`
	CircleID  int64     `json:"circle_id"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
}

// Store 会话存储
type Store struct {
	cookieName string
	lifetime   time.Duration
}

// NewStore 创建会话存储，参数取自 session.* 配置
func NewStore() *Store {
	return &Store{
		cookieName: config.GetString("session.cookie_name", "arena_session"),
		lifetime:   time.Duration(config.GetInt("session.lifetime", 86400)) * time.Second,
	}
}

func (s *Store) key(sessionID string) string {
	return config.GetString("app.name") + ":session:" + sessionID
}

// Start 建立新会话并写入 Cookie
func (s *Store) Start(c *gin.Context, sess *Session) error {
	sess.ID = uuid.New().String()
	sess.CreatedAt = time.Now()

	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if ok := redis.Redis.Set(s.key(sess.ID), string(payload), s.lifetime); !ok {
		return errors.New("failed to persist session")
	}

	s.setCookie(c, sess.ID, int(s.lifetime.Seconds()))
	logger.InfoString("会话", "创建", sess.Email)
	return nil
}

// Get 从请求的 Cookie 里恢复会话
func (s *Store) Get(c *gin.Context) (*Session, error) {
	sessionID, err := c.Cookie(s.cookieName)
	if err != nil || sessionID == "" {
		return nil, ErrNotAuthenticated
	}

	payload := redis.Redis.Get(s.key(sessionID))
	if payload == "" {
		return nil, ErrNotAuthenticated
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, ErrNotAuthenticated
	}
	return &sess, nil
}

// Update 覆盖已有会话内容（如建档后补全 profile_id）
func (s *Store) Update(c *gin.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if ok := redis.Redis.Set(s.key(sess.ID), string(payload), s.lifetime); !ok {
		return errors.New("failed to persist session")
	}
	return nil
}

// Refresh 会话续期，重置 Redis TTL 并刷新 Cookie
func (s *Store) Refresh(c *gin.Context) (*Session, error) {
	sess, err := s.Get(c)
	if err != nil {
		return nil, err
	}

	redis.Redis.Expire(s.key(sess.ID), s.lifetime)
	s.setCookie(c, sess.ID, int(s.lifetime.Seconds()))
	return sess, nil
}

// Destroy 注销会话
func (s *Store) Destroy(c *gin.Context) {
	sessionID, err := c.Cookie(s.cookieName)
	if err == nil && sessionID != "" {
		redis.Redis.Del(s.key(sessionID))
	}
	s.setCookie(c, "", -1)
}

func (s *Store) setCookie(c *gin.Context, value string, maxAge int) {
	// 生产环境下要求 HTTPS
	c.SetCookie(s.cookieName, value, maxAge, "/", "", app.IsProduction(), true)
}
