package handler

import (
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/user/cinehunt/internal/model"
	"github.com/user/cinehunt/internal/utils"
)

// ToggleFavorite 收藏/取消收藏
func (h *Handler) ToggleFavorite(c *gin.Context) {
	var movie model.Movie
	if err := c.ShouldBindJSON(&movie); err != nil || movie.ID < 1 {
		utils.BadRequest(c, "无效的电影数据")
		return
	}

	favorited, err := h.Favorites.Toggle(movie)
	if err != nil {
		utils.InternalServerError(c, "收藏保存失败")
		return
	}
	utils.Success(c, gin.H{"favorited": favorited})
}

// ListFavorites 收藏列表
func (h *Handler) ListFavorites(c *gin.Context) {
	movies := h.Favorites.List()
	utils.Success(c, gin.H{
		"results":  movies,
		"hydrated": h.Favorites.Hydrated(),
	})
}

// FavoriteDetails 批量获取收藏电影的详情
// 各条详情并发独立请求，单条失败只记录日志并丢弃，不影响整批
func (h *Handler) FavoriteDetails(c *gin.Context) {
	favorites := h.Favorites.List()
	details := make([]*model.MovieDetails, len(favorites))

	var wg sync.WaitGroup
	for i, movie := range favorites {
		wg.Add(1)
		go func(idx, id int) {
			defer wg.Done()
			d, err := h.Detail.GetDetails(id)
			if err != nil {
				log.Printf("[Favorite] 详情获取失败 (ID: %d): %v", id, err)
				return
			}
			details[idx] = d
		}(i, movie.ID)
	}
	wg.Wait()

	resolved := make([]*model.MovieDetails, 0, len(details))
	for _, d := range details {
		if d != nil {
			resolved = append(resolved, d)
		}
	}
	utils.Success(c, gin.H{"results": resolved})
}
