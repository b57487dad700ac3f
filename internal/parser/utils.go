package parser

import (
	"regexp"
	"strings"
	"time"
)

var spacePattern = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名用于比较：去首尾空格、压缩连续空白、转小写
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = spacePattern.ReplaceAllString(name, " ")
	return strings.ToLower(name)
}

// ContainsAny 检查字符串是否包含任意一个关键词（大小写不敏感由调用方保证）
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// HasAnyColumn 列名集合中是否出现任一关键词（子串匹配，忽略大小写）
func HasAnyColumn(columns []string, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, col := range columns {
		if strings.Contains(strings.ToLower(col), keyword) {
			return true
		}
	}
	return false
}

// 日期解析尝试的格式，按出现频率排序
// 报表导出里混杂 ISO、美式斜杠和 Excel 的长格式
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"1/2/06",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan 2006",
	"01-02-2006",
	"2006年1月2日",
}

// ParseDate 宽松解析日期字符串；解析失败返回 fallback
// 流水线的日期永不报错，无法解析时取处理当日
func ParseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
