package parser

import (
	"regexp"
	"strings"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// 描述里 "Chemical - 产品名" 形式的抽取
var chemicalDashPattern = regexp.MustCompile(`(?i)chemical[s]?\s*[-:]\s*(.+)`)

// 常见水处理药剂名，用于从自由文本描述中识别
var commonChemicals = []string{
	"sodium hypochlorite",
	"sodium hydroxide",
	"sodium bisulfite",
	"sulfuric acid",
	"hydrochloric acid",
	"ferric chloride",
	"ferric sulfate",
	"aluminum sulfate",
	"alum",
	"chlorine",
	"caustic soda",
	"caustic",
	"polymer",
	"citric acid",
	"hydrogen peroxide",
	"potassium permanganate",
	"calcium hypochlorite",
	"ammonium sulfate",
	"soda ash",
	"lime",
	"bleach",
	"fluoride",
	"phosphate",
	"bisulfite",
	"hypochlorite",
	"coagulant",
	"flocculant",
	"antiscalant",
	"defoamer",
	"dechlorination",
}

// 药剂分类关键词，第一个命中的类别生效
var chemicalCategories = []struct {
	category string
	keywords []string
}{
	{"Disinfectant", []string{"hypochlorite", "chlorine", "bleach", "permanganate", "peroxide", "disinfect"}},
	{"pH Adjustment", []string{"hydroxide", "caustic", "sulfuric", "hydrochloric", "citric", "soda ash", "lime", "acid"}},
	{"Coagulant", []string{"ferric", "alum", "aluminum", "coagulant", "polymer", "flocculant"}},
	{"Dechlorination", []string{"bisulfite", "dechlor", "thiosulfate"}},
	{"Scale Control", []string{"antiscalant", "phosphate", "scale"}},
	{"Other Treatment", []string{"defoamer", "fluoride", "ammonium"}},
}

// ExtractChemicalName 从描述文本中提取药剂名
// 优先取 "Chemical - xxx" 破折号后的部分，其次匹配常见药剂词表，
// 都不命中时返回清理后的原始描述
func ExtractChemicalName(description string) string {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "Unknown"
	}
	if m := chemicalDashPattern.FindStringSubmatch(desc); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" {
			return name
		}
	}
	lower := strings.ToLower(desc)
	for _, chem := range commonChemicals {
		if strings.Contains(lower, chem) {
			return titleCase(chem)
		}
	}
	return desc
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CategorizeChemical 按关键词给药剂归类
func CategorizeChemical(chemical string) string {
	lower := strings.ToLower(chemical)
	if strings.TrimSpace(lower) == "" {
		return "Uncategorized"
	}
	for _, entry := range chemicalCategories {
		if ContainsAny(lower, entry.keywords) {
			return entry.category
		}
	}
	return "Uncategorized"
}

// DeterminePOType 把原始订单类型字符串映射到固定的三类
func DeterminePOType(raw string, reportType model.ReportType) string {
	if reportType == model.ReportTypeNonPOInvoice {
		return model.POTypeNonPO
	}
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case lower == "":
		if reportType == model.ReportTypeChemicalSpend {
			return model.POTypeNonPO
		}
		return model.POTypeCatalog
	case strings.Contains(lower, "free") || strings.Contains(lower, "punch"):
		return model.POTypeFreeText
	case strings.Contains(lower, "non-po") || strings.Contains(lower, "non po") || strings.Contains(lower, "invoice") || strings.Contains(lower, "bill"):
		return model.POTypeNonPO
	case strings.Contains(lower, "catalog") || strings.Contains(lower, "purchase order") || lower == "po":
		return model.POTypeCatalog
	default:
		return model.POTypeCatalog
	}
}
