package service

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/user/cinehunt/internal/config"
	"github.com/user/cinehunt/internal/model"
	"github.com/user/cinehunt/internal/utils"
)

var (
	// ErrNotFound 没有匹配的目录或详情结果
	ErrNotFound = errors.New("movie not found")
	// ErrUpstream 上游接口不可用（网络错误、超时或非 2xx）
	ErrUpstream = errors.New("upstream unavailable")
)

// OMDBClient OMDb 接口客户端
// 所有访问都经过这一个配置好的客户端：固定 API Key，10 秒超时
type OMDBClient struct {
	baseURL string
	apiKey  string
	http    *utils.HTTPClient
}

// NewOMDBClient 创建 OMDb 客户端
func NewOMDBClient(cfg *config.Config) *OMDBClient {
	return &OMDBClient{
		baseURL: cfg.OMDBBaseURL,
		apiKey:  cfg.OMDBAPIKey,
		http:    utils.NewHTTPClient(10 * time.Second),
	}
}

// Search 按关键词搜索电影，year 为空时不做年份过滤
func (c *OMDBClient) Search(term, year string, page int) (*model.OMDBSearchResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", term)
	params.Set("type", "movie")
	params.Set("page", strconv.Itoa(page))
	if year != "" {
		params.Set("y", year)
	}

	var result model.OMDBSearchResponse
	if err := c.http.GetJSON(c.baseURL+"/?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &result, nil
}

// Detail 按外部 IMDb ID 获取完整详情
func (c *OMDBClient) Detail(imdbID string) (*model.OMDBDetailResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)

	var result model.OMDBDetailResponse
	if err := c.http.GetJSON(c.baseURL+"/?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &result, nil
}
