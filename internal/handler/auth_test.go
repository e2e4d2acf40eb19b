package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cinehunt/internal/config"
	"github.com/user/cinehunt/internal/handler"
	"github.com/user/cinehunt/internal/repository"
	"github.com/user/cinehunt/internal/router"
	"github.com/user/cinehunt/internal/utils"
)

// newTestServer 搭建只含认证和收藏依赖的测试服务
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitCache()

	cfg := &config.Config{
		AppSecret:   "test-secret",
		TokenExpiry: time.Hour,
		SiteName:    "CineHunt",
	}
	store, err := repository.NewLocalStore(afero.NewMemMapFs(), "data")
	require.NoError(t, err)

	h := &handler.Handler{
		Config:    cfg,
		Sessions:  repository.NewSessionRepository(store, cfg.AppSecret, cfg.TokenExpiry),
		Favorites: repository.NewFavoriteRepository(store),
	}

	r := gin.New()
	router.RegisterRoutes(r, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginDemo(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/auth/login",
		`{"email":"demo@cinehunt.com","password":"demo123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRegisterAndDuplicate(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "cine_token")

	w = doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestServer(t)

	// 邮箱格式和密码长度由绑定校验
	w := doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Bob","email":"not-an-email","password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"123"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginDemoAndInvalid(t *testing.T) {
	r := newTestServer(t)

	token := loginDemo(t, r)
	assert.True(t, strings.Contains(token, "."))

	w := doJSON(t, r, "POST", "/api/auth/login",
		`{"email":"nope@x.com","password":"whatever"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeAfterLoginAndLogout(t *testing.T) {
	r := newTestServer(t)

	loginDemo(t, r)

	w := doJSON(t, r, "GET", "/api/auth/me", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "demo@cinehunt.com", resp.Data.Email)

	w = doJSON(t, r, "POST", "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFavoritesRequireAuth(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, "GET", "/api/favorites", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFavoritesToggleAndList(t *testing.T) {
	r := newTestServer(t)
	token := loginDemo(t, r)

	movie := `{"id":42,"title":"Inception","poster_path":"https://example.com/p.jpg","vote_average":8.8}`

	w := doJSON(t, r, "POST", "/api/favorites", movie, token)
	require.Equal(t, http.StatusOK, w.Code)

	var toggleResp struct {
		Data struct {
			Favorited bool `json:"favorited"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggleResp))
	assert.True(t, toggleResp.Data.Favorited)

	w = doJSON(t, r, "GET", "/api/favorites", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	type listedMovie struct {
		ID int `json:"id"`
	}
	var listResp struct {
		Data struct {
			Results  []listedMovie `json:"results"`
			Hydrated bool          `json:"hydrated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.True(t, listResp.Data.Hydrated)
	require.Len(t, listResp.Data.Results, 1)
	assert.Equal(t, 42, listResp.Data.Results[0].ID)

	// 再次 Toggle 取消收藏
	w = doJSON(t, r, "POST", "/api/favorites", movie, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggleResp))
	assert.False(t, toggleResp.Data.Favorited)
}
