package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// 括号包裹的金额表示贷项（会计负数记法）
var creditPattern = regexp.MustCompile(`\(.*\)`)

// 清理货币字符串时剔除的符号
var currencyReplacer = strings.NewReplacer("$", "", ",", "", "(", "", ")", "", "¥", "", "€", "", "£", "")

// ParseCurrency 解析货币字符串为浮点金额
// 支持 "$1,234.56"、"(500.00)" 贷项记法、普通数字
// 返回值 isCredit 表示原始值为括号贷项；无法解析时 ok 为 false
func ParseCurrency(raw string) (value float64, isCredit bool, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, false
	}
	isCredit = creditPattern.MatchString(s)
	s = currencyReplacer.Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false
	}
	if isCredit && v > 0 {
		v = -v
	}
	return v, isCredit, true
}

// NormalizeCurrencyColumn 就地规范化表中一列货币值
// 返回成功解析数、贷项数和无法解析数；无法解析的单元格清空为 ""
func NormalizeCurrencyColumn(t *model.Table, column string) (parsed, credits, failed int) {
	col, found := t.FindColumn(column)
	if !found {
		return 0, 0, 0
	}
	values := t.Column(col)
	out := make([]string, len(values))
	for i, raw := range values {
		v, isCredit, ok := ParseCurrency(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				failed++
			}
			out[i] = ""
			continue
		}
		parsed++
		if isCredit {
			credits++
		}
		out[i] = FormatAmount(v)
	}
	t.SetColumn(col, out)
	return parsed, credits, failed
}

// ParseQuantity 解析数量字符串，剔除千分位逗号
func ParseQuantity(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatAmount 金额统一保留两位小数的字符串形式
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatNumber 数量类数值去掉多余的尾零
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
