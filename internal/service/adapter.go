package service

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/cinehunt/internal/model"
)

// notAvailable OMDb 表示字段缺失的哨兵值
const notAvailable = "N/A"

// MovieAdapter 把 OMDb 的松散记录整形为内部 Movie 结构
// 评分和投票数缺失时会合成一个看起来合理的值（刻意为之，不是错误），
// 随机源可注入，便于测试固定结果。
type MovieAdapter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMovieAdapter 创建适配器，rng 传 nil 时使用时间种子
func NewMovieAdapter(rng *rand.Rand) *MovieAdapter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MovieAdapter{rng: rng}
}

// Normalize 将外部记录转换为列表视图的 Movie
func (a *MovieAdapter) Normalize(rec model.OMDBRecord, id int) model.Movie {
	rating := a.parseRating(rec.IMDbRating)
	votes := a.parseVoteCount(rec.IMDbVotes)

	var poster *string
	if present(rec.Poster) {
		p := rec.Poster
		poster = &p
	}

	lang := "en"
	if present(rec.Language) {
		if parts := splitList(rec.Language); len(parts) > 0 {
			lang = parts[0]
		}
	}

	overview := ""
	if present(rec.Plot) {
		overview = rec.Plot
	}

	return model.Movie{
		ID:               id,
		Title:            rec.Title,
		Overview:         overview,
		PosterPath:       poster,
		BackdropPath:     nil,
		ReleaseDate:      rec.Year,
		VoteAverage:      rating,
		VoteCount:        votes,
		Adult:            rec.Rated == "R" || rec.Rated == "NC-17",
		OriginalLanguage: lang,
		OriginalTitle:    rec.Title,
		Popularity:       rating,
		Video:            rec.Type == "movie",
	}
}

// NormalizeDetail 在 Normalize 之上展开详情字段
// 逗号连接的类型/演员/导演/国家/语言串拆分为列表，ID 按位置从 1 开始；
// 两位国家/语言代码取名称前两个字符，尽力而为，不保证符合 ISO 标准。
func (a *MovieAdapter) NormalizeDetail(rec model.OMDBRecord, id int) model.MovieDetails {
	details := model.MovieDetails{
		Movie:  a.Normalize(rec, id),
		IMDbID: rec.IMDbID,
		Status: "Released",
	}

	if present(rec.Website) {
		details.Homepage = rec.Website
	}

	for i, name := range splitList(rec.Genre) {
		details.Genres = append(details.Genres, model.Genre{ID: i + 1, Name: name})
	}

	for _, name := range splitList(rec.Country) {
		details.ProductionCountries = append(details.ProductionCountries, model.ProductionCountry{
			Code: strings.ToUpper(firstTwo(name)),
			Name: name,
		})
	}

	for _, name := range splitList(rec.Language) {
		details.SpokenLanguages = append(details.SpokenLanguages, model.SpokenLanguage{
			Name: name,
			Code: strings.ToLower(firstTwo(name)),
		})
	}

	for i, name := range splitList(rec.Actors) {
		details.Cast = append(details.Cast, model.CastMember{ID: i + 1, Name: name, Character: "Unknown"})
	}

	for i, name := range splitList(rec.Director) {
		details.Crew = append(details.Crew, model.CrewMember{ID: i + 1, Name: name, Job: "Director"})
	}

	if present(rec.BoxOffice) {
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(rec.BoxOffice)
		if revenue, err := strconv.Atoi(cleaned); err == nil {
			details.Revenue = revenue
		}
	}

	if present(rec.Runtime) {
		// 格式如 "142 min"，取前导整数
		if fields := strings.Fields(rec.Runtime); len(fields) > 0 {
			if minutes, err := strconv.Atoi(fields[0]); err == nil {
				details.Runtime = minutes
			}
		}
	}

	return details
}

// parseRating 解析评分，缺失时合成 [6.0, 9.5] 内保留一位小数的值
func (a *MovieAdapter) parseRating(raw string) float64 {
	if present(raw) {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			return rating
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return math.Round((a.rng.Float64()*3.5+6.0)*10) / 10
}

// parseVoteCount 解析投票数（去掉千分位逗号），缺失时合成 [100, 9999] 内的值
func (a *MovieAdapter) parseVoteCount(raw string) int {
	if present(raw) {
		if votes, err := strconv.Atoi(strings.ReplaceAll(raw, ",", "")); err == nil {
			return votes
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Intn(9900) + 100
}

// present 字段既非空也非 "N/A" 哨兵
func present(value string) bool {
	return value != "" && value != notAvailable
}

// splitList 拆分逗号连接的字符串，空值和哨兵返回 nil
func splitList(value string) []string {
	if !present(value) {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// firstTwo 取字符串前两个字符（不足两个时原样返回）
func firstTwo(value string) string {
	runes := []rune(value)
	if len(runes) < 2 {
		return value
	}
	return string(runes[:2])
}
