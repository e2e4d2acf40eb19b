package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) *SessionRepository {
	t.Helper()
	return NewSessionRepository(newTestStore(t), "test-secret", 7*24*time.Hour)
}

func TestLoginDemoAlwaysSucceeds(t *testing.T) {
	sessions := newTestSessions(t)

	user, token, err := sessions.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	assert.Equal(t, "demo-001", user.ID)
	assert.Equal(t, "Demo User", user.Name)
	assert.NotEmpty(t, token)
}

func TestLoginUnknownAccount(t *testing.T) {
	sessions := newTestSessions(t)

	_, _, err := sessions.Login("nope@x.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	sessions := newTestSessions(t)

	_, _, err := sessions.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = sessions.Register("Alice Again", "alice@example.com", "secret456")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, _, err = sessions.Register("Demo Clone", DemoEmail, "demo123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLoginVerifiesPassword(t *testing.T) {
	sessions := newTestSessions(t)

	_, _, err := sessions.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = sessions.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, _, err := sessions.Login("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestCurrentSessionRoundTrip(t *testing.T) {
	sessions := newTestSessions(t)

	logged, _, err := sessions.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	current := sessions.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, logged.ID, current.ID)
	assert.Equal(t, logged.Email, current.Email)
	assert.Equal(t, logged.Name, current.Name)
}

func TestCurrentSessionExpiredToken(t *testing.T) {
	store := newTestStore(t)
	// 负有效期：签发即过期
	sessions := NewSessionRepository(store, "test-secret", -time.Hour)

	_, _, err := sessions.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	assert.Nil(t, sessions.CurrentSession())
}

func TestCurrentSessionTamperedToken(t *testing.T) {
	store := newTestStore(t)
	sessions := NewSessionRepository(store, "test-secret", 7*24*time.Hour)

	_, token, err := sessions.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	// 篡改负载但保留原签名
	parts := strings.SplitN(token, ".", 2)
	require.Len(t, parts, 2)
	require.NoError(t, store.Set(keyToken, parts[0]+"x."+parts[1]))

	assert.Nil(t, sessions.CurrentSession())
}

func TestCurrentSessionMissingArtifacts(t *testing.T) {
	sessions := newTestSessions(t)

	// 从未登录
	assert.Nil(t, sessions.CurrentSession())

	// 只有 Token 没有用户资料
	store := newTestStore(t)
	sessions = NewSessionRepository(store, "test-secret", time.Hour)
	_, _, err := sessions.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)
	require.NoError(t, store.Delete(keyUser))
	assert.Nil(t, sessions.CurrentSession())
}

func TestLogoutIdempotent(t *testing.T) {
	sessions := newTestSessions(t)

	_, _, err := sessions.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	sessions.Logout()
	sessions.Logout()

	assert.Nil(t, sessions.CurrentSession())
}

func TestVerifyTokenMalformed(t *testing.T) {
	sessions := newTestSessions(t)

	for _, token := range []string{"", "garbage", "a.b", "not-base64!.sig", "."} {
		_, err := sessions.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token=%q", token)
	}
}
