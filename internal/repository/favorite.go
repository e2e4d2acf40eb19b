package repository

import (
	"sync"

	"github.com/user/cinehunt/internal/model"
)

// keyFavorites 收藏列表在本地存储中的键
const keyFavorites = "movie_favorites"

// FavoriteRepository 收藏列表
// 按 ID 去重、保持加入顺序；每次变更整表落盘。
// 首次访问时从本地存储惰性水合，损坏的数据按空列表处理。
type FavoriteRepository struct {
	store *LocalStore

	mu       sync.RWMutex
	movies   []model.Movie
	hydrated bool
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(store *LocalStore) *FavoriteRepository {
	return &FavoriteRepository{store: store}
}

// Toggle 收藏/取消收藏，返回操作后该电影是否处于收藏状态
func (r *FavoriteRepository) Toggle(movie model.Movie) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hydrate()

	for i, m := range r.movies {
		if m.ID == movie.ID {
			r.movies = append(r.movies[:i], r.movies[i+1:]...)
			return false, r.persist()
		}
	}

	r.movies = append(r.movies, movie)
	return true, r.persist()
}

// List 返回全部收藏（副本）
func (r *FavoriteRepository) List() []model.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hydrate()

	result := make([]model.Movie, len(r.movies))
	copy(result, r.movies)
	return result
}

// IsFavorite 电影是否已收藏
func (r *FavoriteRepository) IsFavorite(movieID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hydrate()

	for _, m := range r.movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// Hydrated 是否已完成水合，消费方用它区分"还没收藏"和"还没加载"
func (r *FavoriteRepository) Hydrated() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hydrated
}

// hydrate 首次访问时从本地存储加载，调用方需持有写锁
func (r *FavoriteRepository) hydrate() {
	if r.hydrated {
		return
	}
	var list []model.Movie
	if r.store.GetJSON(keyFavorites, &list) {
		r.movies = list
	}
	r.hydrated = true
}

// persist 整表落盘，调用方需持有写锁
func (r *FavoriteRepository) persist() error {
	return r.store.SetJSON(keyFavorites, r.movies)
}
