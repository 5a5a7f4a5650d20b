package data

import (
	"fmt"
	"math"
	"sort"
)

// GenreCount 类型和它在搜索记录中出现的次数
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// GenreProfile 根据搜索历史聚合出来的类型画像
type GenreProfile struct {
	TotalSearches    int                `json:"total_searches"`
	GenreCounts      map[string]int     `json:"genre_counts"`
	GenrePercentages map[string]float64 `json:"genre_percentages"`
	TopGenres        []GenreCount       `json:"top_genres"`
	TasteProfile     string             `json:"taste_profile"`
}

// 每种类型对应的画像描述
var genreDescriptions = map[string]string{
	"Action":    "You love high-energy films with thrilling sequences and explosive moments!",
	"Comedy":    "You have a great sense of humor and enjoy films that make you laugh!",
	"Drama":     "You appreciate deep storytelling and emotional narratives!",
	"Horror":    "You enjoy the thrill of suspense and spine-chilling experiences!",
	"Sci-Fi":    "You're fascinated by futuristic worlds and scientific possibilities!",
	"Romance":   "You enjoy heartwarming stories of love and connection!",
	"Thriller":  "You love edge-of-your-seat suspense and gripping plots!",
	"Adventure": "You crave exciting journeys and epic quests!",
	"Animation": "You appreciate the artistry and creativity of animated storytelling!",
	"Crime":     "You enjoy complex mysteries and criminal investigations!",
}

// BuildGenreProfile 从搜索记录聚合类型画像
// 百分比按 出现该类型的搜索数/总搜索数 计算，保留一位小数
func BuildGenreProfile(logs []*SearchLog) *GenreProfile {
	profile := &GenreProfile{
		TotalSearches:    len(logs),
		GenreCounts:      make(map[string]int),
		GenrePercentages: make(map[string]float64),
		TopGenres:        []GenreCount{},
	}

	for _, log := range logs {
		for _, genre := range log.Genres {
			profile.GenreCounts[genre]++
		}
	}

	if profile.TotalSearches > 0 {
		for genre, count := range profile.GenreCounts {
			percentage := float64(count) / float64(profile.TotalSearches) * 100
			profile.GenrePercentages[genre] = math.Round(percentage*10) / 10
		}
	}

	for genre, count := range profile.GenreCounts {
		profile.TopGenres = append(profile.TopGenres, GenreCount{Genre: genre, Count: count})
	}

	// 次数降序，同次数按类型名升序保证结果稳定
	sort.Slice(profile.TopGenres, func(i, j int) bool {
		if profile.TopGenres[i].Count != profile.TopGenres[j].Count {
			return profile.TopGenres[i].Count > profile.TopGenres[j].Count
		}
		return profile.TopGenres[i].Genre < profile.TopGenres[j].Genre
	})
	if len(profile.TopGenres) > 3 {
		profile.TopGenres = profile.TopGenres[:3]
	}

	profile.TasteProfile = tasteProfile(profile)

	return profile
}

// tasteProfile 生成一段口味画像文案
func tasteProfile(profile *GenreProfile) string {
	if profile.TotalSearches == 0 {
		return "Start searching for movies to discover your genre profile!"
	}

	if len(profile.TopGenres) == 0 {
		return "Your search history shows a diverse taste in movies!"
	}

	topGenre := profile.TopGenres[0].Genre
	percentage := profile.GenrePercentages[topGenre]

	description, ok := genreDescriptions[topGenre]
	if !ok {
		description = fmt.Sprintf("You have a strong preference for %s films!", topGenre)
	}

	var intensity string
	switch {
	case percentage >= 40:
		intensity = "You're a true"
	case percentage >= 25:
		intensity = "You're a big"
	default:
		intensity = "You're a"
	}

	return fmt.Sprintf("%s %s enthusiast! %s Your searches show %s appears in %.1f%% of your movie interests.",
		intensity, topGenre, description, topGenre, percentage)
}
