package utils

import "strings"

// SplitGenres 把逗号分隔的类型输入拆成有序列表，逐项去首尾空白，空项丢弃。
// 例如 "Action, Drama ,Comedy" -> ["Action","Drama","Comedy"]
func SplitGenres(input string) []string {
	parts := strings.Split(input, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
