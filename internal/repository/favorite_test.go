package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cinehunt/internal/model"
)

func testMovie(id int, title string) model.Movie {
	poster := "https://example.com/poster.jpg"
	return model.Movie{ID: id, Title: title, PosterPath: &poster, VoteAverage: 8.1}
}

func TestToggleAddAndRemove(t *testing.T) {
	favorites := NewFavoriteRepository(newTestStore(t))

	added, err := favorites.Toggle(testMovie(1, "Inception"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, favorites.IsFavorite(1))
	assert.Len(t, favorites.List(), 1)

	// 再次 Toggle 移除，回到原始状态
	added, err = favorites.Toggle(testMovie(1, "Inception"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, favorites.IsFavorite(1))
	assert.Empty(t, favorites.List())
}

func TestFavoritesKeepOrder(t *testing.T) {
	favorites := NewFavoriteRepository(newTestStore(t))

	for i, title := range []string{"First", "Second", "Third"} {
		_, err := favorites.Toggle(testMovie(i+1, title))
		require.NoError(t, err)
	}

	// 移除中间一条，顺序保持
	_, err := favorites.Toggle(testMovie(2, "Second"))
	require.NoError(t, err)

	list := favorites.List()
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Third", list[1].Title)
}

func TestFavoritesPersistAcrossInstances(t *testing.T) {
	store := newTestStore(t)

	first := NewFavoriteRepository(store)
	_, err := first.Toggle(testMovie(7, "Heat"))
	require.NoError(t, err)

	// 模拟重启：同一存储上的新实例水合出同样的列表
	second := NewFavoriteRepository(store)
	list := second.List()
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].ID)
}

func TestFavoritesHydrationSignal(t *testing.T) {
	favorites := NewFavoriteRepository(newTestStore(t))

	assert.False(t, favorites.Hydrated())
	favorites.List()
	assert.True(t, favorites.Hydrated())
}

func TestFavoritesCorruptedStateRecovered(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(keyFavorites, "[{broken json"))

	favorites := NewFavoriteRepository(store)
	// 损坏数据按空列表处理，不向调用方抛错
	assert.Empty(t, favorites.List())
	assert.True(t, favorites.Hydrated())

	// 之后的收藏正常工作
	added, err := favorites.Toggle(testMovie(1, "Inception"))
	require.NoError(t, err)
	assert.True(t, added)
}
