package kpi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/parser"
)

// ColumnKind 列的推断类型
type ColumnKind string

const (
	KindID          ColumnKind = "id"
	KindDate        ColumnKind = "date"
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindText        ColumnKind = "text"
)

// KPI 一项自动生成的指标
type KPI struct {
	Name   string  `json:"name"`
	Column string  `json:"column,omitempty"`
	Value  float64 `json:"value"`
	Label  string  `json:"label,omitempty"`
}

// Result KPI 生成结果
// Degraded 表示因超出时间预算而省略了部分指标
type Result struct {
	KPIs       []KPI                 `json:"kpis"`
	ColumnKind map[string]ColumnKind `json:"columnKinds"`
	Degraded   bool                  `json:"degraded"`
	Elapsed    time.Duration         `json:"-"`
}

// Generator 自动指标生成器
// Budget 为软性时钟预算：超过 40% 后跳过高开销指标，
// 超过 80% 后只保留基础计数类指标。预算是降级阈值而非硬中断。
type Generator struct {
	Budget time.Duration
	now    func() time.Time
}

// NewGenerator 创建生成器，budget <= 0 时取默认 2 秒
func NewGenerator(budget time.Duration) *Generator {
	if budget <= 0 {
		budget = 2 * time.Second
	}
	return &Generator{Budget: budget, now: time.Now}
}

// Generate 对标准化表格做列类型分析并产出指标
func (g *Generator) Generate(t *model.Table) Result {
	start := g.now()
	res := Result{ColumnKind: map[string]ColumnKind{}}

	res.KPIs = append(res.KPIs, KPI{Name: "record_count", Value: float64(t.RowCount()), Label: "记录数"})
	res.KPIs = append(res.KPIs, KPI{Name: "column_count", Value: float64(len(t.Columns())), Label: "列数"})

	for _, col := range t.Columns() {
		res.ColumnKind[col] = classifyColumn(col, t.Column(col))
	}

	if g.spent(start) >= 0.8 {
		res.Degraded = true
		res.Elapsed = g.now().Sub(start)
		return res
	}

	// 数值列的合计与均值
	for _, col := range t.Columns() {
		if res.ColumnKind[col] != KindNumeric {
			continue
		}
		sum, count := sumColumn(t.Column(col))
		if count == 0 {
			continue
		}
		res.KPIs = append(res.KPIs, KPI{
			Name: "sum", Column: col, Value: sum,
			Label: fmt.Sprintf("%s 合计", col),
		})
		res.KPIs = append(res.KPIs, KPI{
			Name: "average", Column: col, Value: sum / float64(count),
			Label: fmt.Sprintf("%s 均值", col),
		})
	}

	// 日期列的时间跨度（天）
	for _, col := range t.Columns() {
		if res.ColumnKind[col] != KindDate {
			continue
		}
		if span, ok := dateSpan(t.Column(col)); ok {
			res.KPIs = append(res.KPIs, KPI{
				Name: "date_span_days", Column: col, Value: span,
				Label: fmt.Sprintf("%s 跨度(天)", col),
			})
		}
	}

	if g.spent(start) >= 0.4 {
		res.Degraded = true
		res.Elapsed = g.now().Sub(start)
		return res
	}

	// 高开销部分：类别列的去重计数与头部类别占比
	for _, col := range t.Columns() {
		if res.ColumnKind[col] != KindCategorical {
			continue
		}
		distinct, topShare, topValue := categoryProfile(t.Column(col))
		res.KPIs = append(res.KPIs, KPI{
			Name: "distinct", Column: col, Value: float64(distinct),
			Label: fmt.Sprintf("%s 去重数", col),
		})
		if topValue != "" {
			res.KPIs = append(res.KPIs, KPI{
				Name: "top_share", Column: col, Value: topShare,
				Label: fmt.Sprintf("%s 头部占比: %s", col, topValue),
			})
		}
	}

	res.Elapsed = g.now().Sub(start)
	return res
}

// spent 已消耗的预算比例
func (g *Generator) spent(start time.Time) float64 {
	return float64(g.now().Sub(start)) / float64(g.Budget)
}

// classifyColumn 按列名提示与抽样值推断列类型
func classifyColumn(name string, values []string) ColumnKind {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "id") || strings.Contains(lower, "number") || strings.Contains(lower, "identifier") {
		return KindID
	}
	if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
		return KindDate
	}

	sample := values
	if len(sample) > 200 {
		sample = sample[:200]
	}
	nonEmpty, numeric, dateLike := 0, 0, 0
	distinct := map[string]struct{}{}
	for _, v := range sample {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		nonEmpty++
		distinct[v] = struct{}{}
		if _, _, ok := parser.ParseCurrency(v); ok {
			numeric++
		} else if !parser.ParseDate(v, time.Time{}).IsZero() {
			dateLike++
		}
	}
	if nonEmpty == 0 {
		return KindText
	}
	if numeric*10 >= nonEmpty*9 {
		return KindNumeric
	}
	if dateLike*10 >= nonEmpty*9 {
		return KindDate
	}
	// 去重值很少的列按类别处理
	if len(distinct)*5 <= nonEmpty && len(distinct) <= 50 {
		return KindCategorical
	}
	if len(distinct) <= 20 {
		return KindCategorical
	}
	return KindText
}

func sumColumn(values []string) (float64, int) {
	var sum float64
	count := 0
	for _, v := range values {
		if f, _, ok := parser.ParseCurrency(v); ok {
			sum += f
			count++
		}
	}
	return sum, count
}

func dateSpan(values []string) (float64, bool) {
	var min, max time.Time
	for _, v := range values {
		d := parser.ParseDate(v, time.Time{})
		if d.IsZero() {
			continue
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	if min.IsZero() {
		return 0, false
	}
	return max.Sub(min).Hours() / 24, true
}

func categoryProfile(values []string) (distinct int, topShare float64, topValue string) {
	counts := map[string]int{}
	total := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		counts[v]++
		total++
	}
	if total == 0 {
		return 0, 0, ""
	}
	type kv struct {
		k string
		n int
	}
	pairs := make([]kv, 0, len(counts))
	for k, n := range counts {
		pairs = append(pairs, kv{k, n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].n != pairs[j].n {
			return pairs[i].n > pairs[j].n
		}
		return pairs[i].k < pairs[j].k
	})
	return len(counts), float64(pairs[0].n) / float64(total), pairs[0].k
}
