// Package manuscript 实现项目与章节的应用服务
package manuscript

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML 去除标记，标签位置替换为空格
func StripHTML(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, " "))
}

// CountWords 统计字数：去标记后按空白切分，空内容计 0
func CountWords(content string) int {
	plain := StripHTML(content)
	if plain == "" {
		return 0
	}
	return len(strings.Fields(plain))
}
