package parser

import (
	"regexp"
	"strings"
)

// 区域归并后的固定集合
var CanonicalRegions = []string{
	"South",
	"Southwest",
	"Northwest",
	"Northeast",
	"Central",
	"West",
	"Mid-Atlantic",
	"Unknown",
}

var emailPattern = regexp.MustCompile(`\S+@\S+`)

// 按前缀归并区域，顺序敏感：Southwest 必须先于 South 检查
var regionPrefixes = []struct {
	prefix string
	region string
}{
	{"mid-atlantic", "Mid-Atlantic"},
	{"midatlantic", "Mid-Atlantic"},
	{"mid atlantic", "Mid-Atlantic"},
	{"southwest", "Southwest"},
	{"south west", "Southwest"},
	{"northwest", "Northwest"},
	{"north west", "Northwest"},
	{"northeast", "Northeast"},
	{"north east", "Northeast"},
	{"south", "South"},
	{"central", "Central"},
	{"west", "West"},
}

// 设施名里的区域线索，用于引用字段缺失时的兜底分类
// South 优先匹配（业务主体在南区），其余按地理分区排查
var facilityRegionKeywords = []struct {
	region   string
	keywords []string
}{
	{"South", []string{"florida", "fl", "georgia", "ga", "alabama", "al", "tennessee", "tn", "carolina", "nc", "sc", "louisiana", "la", "mississippi", "ms", "arkansas", "ar", "kentucky", "ky", "atlanta", "miami", "tampa", "orlando", "nashville"}},
	{"Northeast", []string{"new york", "ny", "massachusetts", "ma", "connecticut", "ct", "maine", "vermont", "new hampshire", "boston", "jersey", "nj", "pennsylvania", "pa"}},
	{"Central", []string{"illinois", "il", "ohio", "oh", "michigan", "mi", "indiana", "in", "wisconsin", "wi", "minnesota", "mn", "missouri", "mo", "kansas", "ks", "iowa", "ia", "nebraska", "ne", "chicago"}},
	{"Northwest", []string{"washington", "wa", "oregon", "or", "idaho", "seattle", "portland", "spokane", "boise"}},
	{"Southwest", []string{"texas", "tx", "arizona", "az", "new mexico", "nm", "oklahoma", "ok", "phoenix", "dallas", "houston", "austin", "san antonio"}},
	{"West", []string{"california", "ca", "nevada", "nv", "utah", "ut", "colorado", "co", "los angeles", "san francisco", "denver", "las vegas", "sacramento"}},
	{"Mid-Atlantic", []string{"virginia", "va", "maryland", "md", "delaware", "de", "washington dc", "d.c."}},
}

// CleanRegionName 清理原始区域引用：剔除邮箱片段，取冒号前的主体
func CleanRegionName(raw string) string {
	s := emailPattern.ReplaceAllString(raw, "")
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// ConsolidateRegion 把自由文本的区域引用归并到固定集合
// 已归并的值原样保留（保证幂等），空值归 Unknown，
// 其余无法识别的非空值归 South（业务主体在南区）
func ConsolidateRegion(raw string) string {
	cleaned := CleanRegionName(raw)
	if cleaned == "" {
		return "Unknown"
	}
	for _, canonical := range CanonicalRegions {
		if strings.EqualFold(cleaned, canonical) {
			return canonical
		}
	}
	lower := strings.ToLower(cleaned)
	for _, p := range regionPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.region
		}
	}
	return "South"
}

// AssignRegionFromFacility 区域字段缺失时按设施名关键词推断
func AssignRegionFromFacility(facility string) string {
	lower := strings.ToLower(strings.TrimSpace(facility))
	if lower == "" {
		return "Unknown"
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '(' || r == ')'
	})
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}
	for _, entry := range facilityRegionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(lower, kw) {
					return entry.region
				}
				continue
			}
			if len(kw) <= 2 {
				// 州缩写只做整词匹配，避免 "in"、"or" 之类误伤
				if _, ok := wordSet[kw]; ok {
					return entry.region
				}
				continue
			}
			if strings.Contains(lower, kw) {
				return entry.region
			}
		}
	}
	return "South"
}
