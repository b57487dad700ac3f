package parser

import (
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// DetectionResult 报表格式识别结果
type DetectionResult struct {
	ReportType model.ReportType `json:"reportType"`
	// 各格式的签名列命中数
	POLineMatches   int `json:"poLineMatches"`
	NonPOMatches    int `json:"nonPoMatches"`
	ChemicalMatches int `json:"chemicalMatches"`
	// Chemical Spend 是否由文件名直接判定
	ByFilename bool `json:"byFilename"`
}

// StandardizeResult 标准化结果
// Table 为原始列的严格超集（只追加标准列），Records 为逐行提取的标准化记录
type StandardizeResult struct {
	Table        *model.Table
	Records      []model.Record
	Warnings     []string
	CreditCount  int
	CoercedCount int
}

// CoercionPolicy 校验时的纠偏策略
// lenient: 尽量纠偏接受（缺列补默认值、非数值强转），这是产品层面的明确决策；
// strict: 纠偏点一律拒绝，供测试与数据质量审查使用
type CoercionPolicy string

const (
	PolicyLenient CoercionPolicy = "lenient"
	PolicyStrict  CoercionPolicy = "strict"
)

// Valid 是否为已知策略
func (p CoercionPolicy) Valid() bool {
	return p == PolicyLenient || p == PolicyStrict
}
