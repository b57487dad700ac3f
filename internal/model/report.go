package model

import "time"

// ReportType 报表格式类型
type ReportType string

const (
	ReportTypePOLineDetail  ReportType = "po_line_detail"
	ReportTypeNonPOInvoice  ReportType = "non_po_invoice"
	ReportTypeChemicalSpend ReportType = "chemical_spend_by_supplier"
)

// DisplayName 报表类型的展示名称
func (rt ReportType) DisplayName() string {
	switch rt {
	case ReportTypePOLineDetail:
		return "PO Line Detail"
	case ReportTypeNonPOInvoice:
		return "Non-PO Invoice"
	case ReportTypeChemicalSpend:
		return "Chemical Spend by Supplier"
	}
	return string(rt)
}

// Valid 是否为已知报表类型
func (rt ReportType) Valid() bool {
	switch rt {
	case ReportTypePOLineDetail, ReportTypeNonPOInvoice, ReportTypeChemicalSpend:
		return true
	}
	return false
}

// POType 采购单类型的标准取值
const (
	POTypeCatalog  = "Catalog"
	POTypeFreeText = "Free Text"
	POTypeNonPO    = "Non-PO"
)

// 标准化列名
// 标准化过程向原始表格追加这些列，原始列一律保留
const (
	ColDate      = "Date"
	ColFacility  = "Facility"
	ColChemical  = "Chemical"
	ColOrderID   = "Order_ID"
	ColTotalCost = "Total_Cost"
	ColSupplier  = "Supplier"
	ColRegion    = "Region"
	ColQuantity  = "Quantity"
	ColUnit      = "Unit"
	ColUnitPrice = "Unit_Price"
	ColPOType    = "Type: Purchase Order"
	ColCategory  = "Chemical_Category"
)

// Record 标准化后的单行记录
// Total_Cost 恒为有效数值（解析失败归零），Region 恒为合并后的大区，
// Date 恒为有效时间（无法解析时取处理当日）
type Record struct {
	Date      time.Time `json:"date"`
	Facility  string    `json:"facility"`
	Supplier  string    `json:"supplier"`
	Chemical  string    `json:"chemical"`
	Category  string    `json:"category,omitempty"`
	OrderID   string    `json:"orderId"`
	TotalCost float64   `json:"totalCost"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Region    string    `json:"region"`
	POType    string    `json:"poType"`
}

// IsCredit 是否为贷记行（负数金额）
func (r *Record) IsCredit() bool {
	return r.TotalCost < 0
}

// ReportMeta reports 表中的一条报表元数据
type ReportMeta struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"originalFilename"`
	ReportType       string    `json:"reportType"`
	UploadedAt       time.Time `json:"uploadedAt"`
	RecordCount      int       `json:"recordCount"`
	DataPath         string    `json:"dataPath"`
	SnapshotPath     string    `json:"snapshotPath"`
	Description      string    `json:"description"`
}
