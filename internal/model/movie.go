package model

// Movie 电影模型（列表视图的规范化结构）
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Popularity       float64 `json:"popularity"`
	Video            bool    `json:"video"`
}

// Genre 类型标签（ID 按出现位置从 1 开始分配）
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry 制片国家/地区
type ProductionCountry struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

// SpokenLanguage 语言
type SpokenLanguage struct {
	Name string `json:"name"`
	Code string `json:"iso_639_1"`
}

// CastMember 演员
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

// CrewMember 制作人员（导演等）
type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// MovieDetails 电影详情（在 Movie 之上补充深层字段）
type MovieDetails struct {
	Movie
	Budget              int                 `json:"budget"`
	Genres              []Genre             `json:"genres"`
	Homepage            string              `json:"homepage"`
	IMDbID              string              `json:"imdb_id"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Revenue             int                 `json:"revenue"`
	Runtime             int                 `json:"runtime"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Cast                []CastMember        `json:"cast"`
	Crew                []CrewMember        `json:"crew"`
}

// CatalogPage 一页目录结果及分页元信息
type CatalogPage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}
