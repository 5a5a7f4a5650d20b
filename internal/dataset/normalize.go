package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var yearRX = regexp.MustCompile(`\s*\((\d{4})\)\s*$`)

// NormalizeTitle 把标题末尾的冠词移到开头并提取上映年份
// 如 "Godfather, The (1972)" 变成 "The Godfather (1972)"，年份保留在标题里
// 同时单独返回，没有年份时返回 0
func NormalizeTitle(raw string) (string, int32) {
	title := strings.TrimSpace(raw)

	var year int32
	if m := yearRX.FindStringSubmatch(title); m != nil {
		y, err := strconv.Atoi(m[1])
		if err == nil {
			year = int32(y)
		}
		title = strings.TrimSpace(yearRX.ReplaceAllString(title, ""))
	}

	switch {
	case strings.HasSuffix(title, ", The"):
		title = "The " + strings.TrimSpace(strings.TrimSuffix(title, ", The"))
	case strings.HasSuffix(title, ", An"):
		title = "An " + strings.TrimSpace(strings.TrimSuffix(title, ", An"))
	case strings.HasSuffix(title, ", A"):
		title = "A " + strings.TrimSpace(strings.TrimSuffix(title, ", A"))
	}

	if year != 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}

	return title, year
}
