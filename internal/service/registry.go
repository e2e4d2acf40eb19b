package service

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/user/cinehunt/internal/model"
)

// MovieRegistry 合成 ID 与外部记录的映射表
// 列表接口不提供可直接用于路由的稳定键，因此给每条结果分配一个
// 会话内唯一的整数 ID，详情查询时再反查回外部记录。
// 容量有上限，最久未用的条目会被淘汰；被淘汰的 ID 走详情解析的回退路径。
type MovieRegistry struct {
	storage *lru.Cache[int, model.OMDBRecord]
}

// NewMovieRegistry 创建注册表，size 是最大条目数
func NewMovieRegistry(size int) *MovieRegistry {
	// lru.New 是线程安全的
	c, _ := lru.New[int, model.OMDBRecord](size)
	return &MovieRegistry{storage: c}
}

// Register 登记合成 ID 对应的外部记录，同一 ID 只写入一次
func (r *MovieRegistry) Register(id int, record model.OMDBRecord) {
	if _, ok := r.storage.Peek(id); ok {
		return
	}
	r.storage.Add(id, record)
}

// Lookup 按合成 ID 反查外部记录
func (r *MovieRegistry) Lookup(id int) (model.OMDBRecord, bool) {
	return r.storage.Get(id)
}

// Len 当前条目数
func (r *MovieRegistry) Len() int {
	return r.storage.Len()
}
