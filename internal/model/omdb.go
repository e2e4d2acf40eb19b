package model

// OMDBRecord OMDb 返回的松散电影记录，列表项和详情共用一个结构
// 字段随接口不同可能缺失，缺失时为空字符串或 "N/A" 哨兵值
type OMDBRecord struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	BoxOffice  string `json:"BoxOffice"`
	Website    string `json:"Website"`
}

// OMDBSearchResponse 搜索接口的响应信封
type OMDBSearchResponse struct {
	Search       []OMDBRecord `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
}

// OMDBDetailResponse 按 IMDb ID 查询详情的响应信封
type OMDBDetailResponse struct {
	OMDBRecord
	Response string `json:"Response"`
	Error    string `json:"Error"`
}
