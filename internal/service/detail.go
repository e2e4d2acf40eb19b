package service

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/cinehunt/internal/model"
	"github.com/user/cinehunt/internal/utils"
)

// detailCacheTTL 详情结果的缓存有效期
const detailCacheTTL = 10 * time.Minute

// DetailService 电影详情解析服务
// 主路径通过注册表反查外部键；注册表不认识的 ID（比如页面刷新后
// 加载的收藏）走回退路径：重发一次通用搜索，按位置取模挑选。
// 回退是尽力而为的恢复手段，不保证返回调用方真正想要的那部电影。
type DetailService struct {
	client   *OMDBClient
	adapter  *MovieAdapter
	registry *MovieRegistry
	group    singleflight.Group
}

// NewDetailService 创建详情服务
func NewDetailService(client *OMDBClient, adapter *MovieAdapter, registry *MovieRegistry) *DetailService {
	return &DetailService{
		client:   client,
		adapter:  adapter,
		registry: registry,
	}
}

// GetDetails 按合成 ID 获取电影详情
func (s *DetailService) GetDetails(id int) (*model.MovieDetails, error) {
	cacheKey := fmt.Sprintf("detail:%d", id)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		details := cached.(model.MovieDetails)
		return &details, nil
	}

	// 使用 singleflight 避免并发重复请求同一部电影
	val, err, _ := s.group.Do(strconv.Itoa(id), func() (interface{}, error) {
		return s.resolve(id)
	})
	if err != nil {
		return nil, err
	}

	details := val.(*model.MovieDetails)
	utils.CacheSet(cacheKey, *details, detailCacheTTL)
	return details, nil
}

func (s *DetailService) resolve(id int) (*model.MovieDetails, error) {
	// 主路径：注册表反查外部键
	if record, ok := s.registry.Lookup(id); ok && record.IMDbID != "" {
		details, err := s.fetchByKey(record.IMDbID, id)
		if err == nil {
			return details, nil
		}
		log.Printf("[Detail] 主路径解析失败 (ID: %d): %v", id, err)
	}

	// 回退路径：重发通用搜索，按位置取模挑选一条
	resp, err := s.client.Search("movie", "", 1)
	if err != nil {
		return nil, err
	}
	if resp.Response != "True" || len(resp.Search) == 0 {
		return nil, ErrNotFound
	}

	record := resp.Search[(id-1)%len(resp.Search)]
	if record.IMDbID == "" {
		return nil, ErrNotFound
	}
	return s.fetchByKey(record.IMDbID, id)
}

// fetchByKey 按外部键拉取详情并做规范化展开
func (s *DetailService) fetchByKey(imdbID string, id int) (*model.MovieDetails, error) {
	resp, err := s.client.Detail(imdbID)
	if err != nil {
		return nil, err
	}
	if resp.Response != "True" {
		return nil, ErrNotFound
	}

	details := s.adapter.NormalizeDetail(resp.OMDBRecord, id)
	return &details, nil
}
