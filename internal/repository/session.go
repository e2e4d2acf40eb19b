package repository

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/cinehunt/internal/model"
)

// 演示账号，凭证固定，方便随手体验
const (
	DemoEmail    = "demo@cinehunt.com"
	DemoPassword = "demo123"
	demoName     = "Demo User"
	demoUserID   = "demo-001"
)

// 本地存储使用的键
const (
	keyUser  = "cine_user"
	keyToken = "cine_token"
)

var (
	// ErrAlreadyExists 邮箱已被注册
	ErrAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials 邮箱或密码不匹配
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken Token 格式错误、签名不符或已过期
	ErrInvalidToken = errors.New("invalid or expired token")
)

// SessionRepository 模拟认证会话
// 用户名册保存在内存中并预置演示账号；当前会话（用户 + Token）
// 持久化到本地存储。Token 是两段式的 base64 负载加可本地复算的签名，
// 只做一致性校验，不是加密安全的签名，不能用于生产信任决策。
type SessionRepository struct {
	store  *LocalStore
	secret string
	expiry time.Duration

	mu    sync.RWMutex
	users map[string]*model.User // email → user

	now func() time.Time // 可注入，便于测试
}

// NewSessionRepository 创建会话仓库并预置演示账号
func NewSessionRepository(store *LocalStore, secret string, expiry time.Duration) *SessionRepository {
	repo := &SessionRepository{
		store:  store,
		secret: secret,
		expiry: expiry,
		users:  make(map[string]*model.User),
		now:    time.Now,
	}
	repo.users[DemoEmail] = &model.User{
		ID:        demoUserID,
		Name:      demoName,
		Email:     DemoEmail,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return repo
}

// Register 注册新用户，邮箱已存在时返回 ErrAlreadyExists
func (r *SessionRepository) Register(name, email, password string) (*model.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[email]; exists {
		return nil, "", ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    r.now(),
	}
	r.users[email] = user

	token := r.GenerateToken(user)
	r.persistSession(user, token)

	return user, token, nil
}

// Login 登录
// 演示账号的固定凭证永远生效；其余账号按邮箱查找并校验密码哈希
func (r *SessionRepository) Login(email, password string) (*model.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[email]

	if email == DemoEmail && password == DemoPassword {
		token := r.GenerateToken(user)
		r.persistSession(user, token)
		return user, token, nil
	}

	if !exists {
		return nil, "", ErrInvalidCredentials
	}
	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, "", ErrInvalidCredentials
		}
	}

	token := r.GenerateToken(user)
	r.persistSession(user, token)
	return user, token, nil
}

// CurrentSession 读取当前持久化会话
// 用户或 Token 任一缺失、Token 格式错误、过期或签名不符都返回 nil；
// 成功时用 Token 负载里的信息重新落盘，修复存储的资料漂移
func (r *SessionRepository) CurrentSession() *model.User {
	token, ok := r.store.Get(keyToken)
	if !ok {
		return nil
	}

	var stored model.User
	if !r.store.GetJSON(keyUser, &stored) {
		return nil
	}

	payload, err := r.VerifyToken(token)
	if err != nil {
		r.Logout()
		return nil
	}

	user := &model.User{
		ID:        payload.ID,
		Name:      payload.Name,
		Email:     payload.Email,
		CreatedAt: stored.CreatedAt,
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}
	r.persistSession(user, token)

	return user
}

// Logout 清除持久化会话，幂等
func (r *SessionRepository) Logout() {
	_ = r.store.Delete(keyUser)
	_ = r.store.Delete(keyToken)
}

// GenerateToken 生成两段式 Token：base64(负载JSON) + "." + 签名
func (r *SessionRepository) GenerateToken(user *model.User) string {
	now := r.now()
	payload := model.TokenPayload{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(r.expiry).UnixMilli(),
	}

	raw, _ := json.Marshal(payload)
	encoded := base64.StdEncoding.EncodeToString(raw)
	return encoded + "." + r.sign(encoded)
}

// VerifyToken 校验 Token 的格式、有效期和签名
func (r *SessionRepository) VerifyToken(token string) (*model.TokenPayload, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrInvalidToken
	}

	raw, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var payload model.TokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidToken
	}

	if payload.ExpiresAt <= r.now().UnixMilli() {
		return nil, ErrInvalidToken
	}
	if r.sign(parts[0]) != parts[1] {
		return nil, ErrInvalidToken
	}

	return &payload, nil
}

// sign 对编码后的负载复算签名（负载拼接 base64 密钥再整体编码）
func (r *SessionRepository) sign(encodedPayload string) string {
	encodedSecret := base64.StdEncoding.EncodeToString([]byte(r.secret))
	return base64.StdEncoding.EncodeToString([]byte(encodedPayload + encodedSecret))
}

// persistSession 落盘会话的两个部件：用户资料和 Token
func (r *SessionRepository) persistSession(user *model.User, token string) {
	_ = r.store.SetJSON(keyUser, user)
	_ = r.store.Set(keyToken, token)
}
