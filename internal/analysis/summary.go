package analysis

import (
	"sort"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// NamedAmount 维度聚合结果的一项
type NamedAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Summary 过滤后记录集的汇总
type Summary struct {
	RecordCount    int           `json:"recordCount"`
	TotalSpend     float64       `json:"totalSpend"`
	CreditTotal    float64       `json:"creditTotal"`
	CreditCount    int           `json:"creditCount"`
	AvgUnitPrice   float64       `json:"avgUnitPrice"`
	ByFacility     []NamedAmount `json:"byFacility"`
	ByChemical     []NamedAmount `json:"byChemical"`
	BySupplier     []NamedAmount `json:"bySupplier"`
	ByRegion       []NamedAmount `json:"byRegion"`
	ByPOType       []NamedAmount `json:"byPoType"`
	ByCategory     []NamedAmount `json:"byCategory"`
	ByMonth        []NamedAmount `json:"byMonth"`
	QtyByChemical  []NamedAmount `json:"qtyByChemical"`
	FacilityCount  int           `json:"facilityCount"`
	SupplierCount  int           `json:"supplierCount"`
	ChemicalCount  int           `json:"chemicalCount"`
}

// Summarize 汇总一组记录
// 各维度按金额降序；ByMonth 按年月升序（键形如 2025-03）
func Summarize(records []model.Record) Summary {
	s := Summary{RecordCount: len(records)}
	byFacility := map[string]float64{}
	byChemical := map[string]float64{}
	bySupplier := map[string]float64{}
	byRegion := map[string]float64{}
	byPOType := map[string]float64{}
	byCategory := map[string]float64{}
	byMonth := map[string]float64{}
	qtyByChemical := map[string]float64{}

	var priceSum float64
	priceCount := 0
	for _, rec := range records {
		s.TotalSpend += rec.TotalCost
		if rec.IsCredit() {
			s.CreditTotal += rec.TotalCost
			s.CreditCount++
		}
		if rec.UnitPrice > 0 {
			priceSum += rec.UnitPrice
			priceCount++
		}
		byFacility[rec.Facility] += rec.TotalCost
		byChemical[rec.Chemical] += rec.TotalCost
		bySupplier[rec.Supplier] += rec.TotalCost
		byRegion[rec.Region] += rec.TotalCost
		byPOType[rec.POType] += rec.TotalCost
		byCategory[rec.Category] += rec.TotalCost
		byMonth[rec.Date.Format("2006-01")] += rec.TotalCost
		qtyByChemical[rec.Chemical] += rec.Quantity
	}
	if priceCount > 0 {
		s.AvgUnitPrice = priceSum / float64(priceCount)
	}

	s.ByFacility = sortedByAmount(byFacility)
	s.ByChemical = sortedByAmount(byChemical)
	s.BySupplier = sortedByAmount(bySupplier)
	s.ByRegion = sortedByAmount(byRegion)
	s.ByPOType = sortedByAmount(byPOType)
	s.ByCategory = sortedByAmount(byCategory)
	s.ByMonth = sortedByName(byMonth)
	s.QtyByChemical = sortedByAmount(qtyByChemical)
	s.FacilityCount = len(byFacility)
	s.SupplierCount = len(bySupplier)
	s.ChemicalCount = len(byChemical)
	return s
}

func sortedByAmount(m map[string]float64) []NamedAmount {
	out := make([]NamedAmount, 0, len(m))
	for name, amount := range m {
		out = append(out, NamedAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortedByName(m map[string]float64) []NamedAmount {
	out := make([]NamedAmount, 0, len(m))
	for name, amount := range m {
		out = append(out, NamedAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
