package analysis

import (
	"strings"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// Filter 记录过滤条件，零值字段不参与过滤
type Filter struct {
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Facilities []string  `json:"facilities"`
	Chemicals  []string  `json:"chemicals"`
	Suppliers  []string  `json:"suppliers"`
	Regions    []string  `json:"regions"`
	POTypes    []string  `json:"poTypes"`
	Categories []string  `json:"categories"`
}

// Empty 是否没有任何过滤条件
func (f Filter) Empty() bool {
	return f.From.IsZero() && f.To.IsZero() &&
		len(f.Facilities) == 0 && len(f.Chemicals) == 0 && len(f.Suppliers) == 0 &&
		len(f.Regions) == 0 && len(f.POTypes) == 0 && len(f.Categories) == 0
}

// Apply 按条件过滤记录，各条件之间取交集
func (f Filter) Apply(records []model.Record) []model.Record {
	if f.Empty() {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if f.match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (f Filter) match(rec model.Record) bool {
	if !f.From.IsZero() && rec.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && rec.Date.After(f.To) {
		return false
	}
	if !matchAny(rec.Facility, f.Facilities) {
		return false
	}
	if !matchAny(rec.Chemical, f.Chemicals) {
		return false
	}
	if !matchAny(rec.Supplier, f.Suppliers) {
		return false
	}
	if !matchAny(rec.Region, f.Regions) {
		return false
	}
	if !matchAny(rec.POType, f.POTypes) {
		return false
	}
	if !matchAny(rec.Category, f.Categories) {
		return false
	}
	return true
}

// matchAny 候选集为空表示不过滤；比较忽略大小写
func matchAny(value string, candidates []string) bool {
	if len(candidates) == 0 {
		return true
	}
	for _, c := range candidates {
		if strings.EqualFold(value, c) {
			return true
		}
	}
	return false
}
