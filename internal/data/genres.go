package data

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidGenresFormat 自定义解析错误
var ErrInvalidGenresFormat = errors.New("invalid genres format")

// noGenres MovieLens 数据集中表示没有类型的占位符
const noGenres = "(no genres listed)"

// Genres 自定义电影类型列表，JSON 中表示为逗号分隔的字符串
// 如 "Action, Comedy"，与数据集里竖线分隔的原始格式区分开
type Genres []string

func (g Genres) MarshalJSON() ([]byte, error) {
	quotedJSONValue := strconv.Quote(strings.Join(g, ", "))
	return []byte(quotedJSONValue), nil
}

func (g *Genres) UnmarshalJSON(jsonValue []byte) error {
	unquotedJSONValue, err := strconv.Unquote(string(jsonValue))
	if err != nil {
		return ErrInvalidGenresFormat
	}

	*g = ParseGenreList(unquotedJSONValue)

	return nil
}

// String 返回逗号分隔的展示格式
func (g Genres) String() string {
	return strings.Join(g, ", ")
}

// MatchScore 返回两个类型列表交集的大小
func (g Genres) MatchScore(other Genres) int {
	set := make(map[string]struct{}, len(g))
	for _, genre := range g {
		set[genre] = struct{}{}
	}

	score := 0
	for _, genre := range other {
		if _, ok := set[genre]; ok {
			score++
		}
	}

	return score
}

// ParseGenreList 解析逗号分隔的类型字符串
func ParseGenreList(s string) Genres {
	s = strings.TrimSpace(s)
	if s == "" || s == noGenres {
		return nil
	}

	parts := strings.Split(s, ",")
	genres := make(Genres, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			genres = append(genres, part)
		}
	}

	return genres
}

// ParsePipeGenres 解析数据集里竖线分隔的原始类型字符串
func ParsePipeGenres(s string) Genres {
	s = strings.TrimSpace(s)
	if s == "" || s == noGenres {
		return nil
	}

	parts := strings.Split(s, "|")
	genres := make(Genres, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			genres = append(genres, part)
		}
	}

	return genres
}
