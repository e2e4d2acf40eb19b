package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/cinehunt/internal/model"
	"github.com/user/cinehunt/internal/utils"
)

// pageSize OMDb 固定的每页条数
const pageSize = 10

// popularTerms "热门"类目使用的固定搜索词表，每次调用随机选取一个
// 连续翻页可能命中不同的词，主题不保证连贯，这是已知的取舍
var popularTerms = []string{"action", "adventure", "drama", "comedy"}

// CatalogService 目录查询服务（热门/高分/正在上映/搜索）
// 上游没有这些类目概念，全部基于通用搜索接口合成。
type CatalogService struct {
	client   *OMDBClient
	adapter  *MovieAdapter
	registry *MovieRegistry
	pages    *utils.SearchCache[model.CatalogPage]

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalogService 创建目录服务，rng 传 nil 时使用时间种子
func NewCatalogService(client *OMDBClient, adapter *MovieAdapter, registry *MovieRegistry, rng *rand.Rand) *CatalogService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CatalogService{
		client:   client,
		adapter:  adapter,
		registry: registry,
		pages:    utils.NewSearchCache[model.CatalogPage](500, 5*time.Minute),
		rng:      rng,
	}
}

// Popular 热门电影：从固定词表随机选词搜索
func (s *CatalogService) Popular(page int) (*model.CatalogPage, error) {
	s.mu.Lock()
	term := popularTerms[s.rng.Intn(len(popularTerms))]
	s.mu.Unlock()
	return s.fetchPage(term, "", page)
}

// NowPlaying 正在上映：固定搜索 "movie" 并限定当前年份
func (s *CatalogService) NowPlaying(page int) (*model.CatalogPage, error) {
	year := strconv.Itoa(time.Now().Year())
	return s.fetchPage("movie", year, page)
}

// TopRated 高分电影：固定搜索 "movie"，客户端过滤评分 >= 8.0 并降序排序
// 过滤发生在取回固定大小的一页之后，返回的结果可能不足 10 条
func (s *CatalogService) TopRated(page int) (*model.CatalogPage, error) {
	result, err := s.fetchPage("movie", "", page)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Movie, 0, len(result.Results))
	for _, m := range result.Results {
		if m.VoteAverage >= 8.0 {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].VoteAverage > filtered[j].VoteAverage
	})
	result.Results = filtered

	return result, nil
}

// Search 用户搜索：查询串直接透传
// 没有命中是用户输入的正常状态，降级为空页而不是错误
func (s *CatalogService) Search(query string, page int) (*model.CatalogPage, error) {
	if strings.TrimSpace(query) == "" {
		return emptyPage(), nil
	}

	result, err := s.fetchPage(query, "", page)
	if errors.Is(err, ErrNotFound) {
		return emptyPage(), nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fetchPage 拉取一页搜索结果并规范化
// 每条结果按 (page-1)*10 + 位置 + 1 分配合成 ID 并登记到注册表，
// 没有海报图的条目从所有列表视图中剔除
func (s *CatalogService) fetchPage(term, year string, page int) (*model.CatalogPage, error) {
	cacheKey := fmt.Sprintf("%s|%s|%d", term, year, page)
	if cached, ok := s.pages.Get(cacheKey); ok {
		return &cached, nil
	}

	resp, err := s.client.Search(term, year, page)
	if err != nil {
		return nil, err
	}
	if resp.Response != "True" || len(resp.Search) == 0 {
		return nil, ErrNotFound
	}

	movies := make([]model.Movie, 0, len(resp.Search))
	for i, rec := range resp.Search {
		id := (page-1)*pageSize + i + 1
		s.registry.Register(id, rec)

		movie := s.adapter.Normalize(rec, id)
		if movie.PosterPath == nil {
			continue
		}
		movies = append(movies, movie)
	}

	total, err := strconv.Atoi(resp.TotalResults)
	if err != nil || total <= 0 {
		total = len(movies)
	}

	result := model.CatalogPage{
		Page:         page,
		Results:      movies,
		TotalPages:   (total + pageSize - 1) / pageSize,
		TotalResults: total,
	}
	s.pages.Set(cacheKey, result)

	return &result, nil
}

// emptyPage 搜索无结果时的空页
func emptyPage() *model.CatalogPage {
	return &model.CatalogPage{
		Page:         1,
		Results:      []model.Movie{},
		TotalPages:   1,
		TotalResults: 0,
	}
}
