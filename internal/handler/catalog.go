package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/cinehunt/internal/service"
	"github.com/user/cinehunt/internal/utils"
)

// Popular 热门电影列表
func (h *Handler) Popular(c *gin.Context) {
	page := parsePage(c)
	result, err := h.Catalog.Popular(page)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	utils.Success(c, result)
}

// TopRated 高分电影列表
func (h *Handler) TopRated(c *gin.Context) {
	page := parsePage(c)
	result, err := h.Catalog.TopRated(page)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	utils.Success(c, result)
}

// NowPlaying 正在上映列表
func (h *Handler) NowPlaying(c *gin.Context) {
	page := parsePage(c)
	result, err := h.Catalog.NowPlaying(page)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	utils.Success(c, result)
}

// SearchMovies 搜索电影
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("q")
	page := parsePage(c)

	result, err := h.Catalog.Search(query, page)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	utils.Success(c, result)
}

// MovieDetail 电影详情
func (h *Handler) MovieDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	details, err := h.Detail.GetDetails(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	utils.Success(c, details)
}

// parsePage 解析页码参数，缺失或非法时为 1
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondCatalogError 目录/详情错误统一翻译为响应
func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, "没有找到相关电影")
	case errors.Is(err, service.ErrUpstream):
		utils.BadGateway(c, "")
	default:
		utils.InternalServerError(c, "")
	}
}
