package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// ErrUnreadable 所有解析策略都失败
var ErrUnreadable = errors.New("file is not a readable spreadsheet")

// CSV 分隔符嗅探顺序
var csvSeparators = []rune{',', ';', '\t', '|'}

// ReadFile 把上传的表格文件读成 Table
// xlsx/xlsm 走 excelize；xls 先按 OOXML 试 excelize，再按 BIFF 走 xlsReader；
// 两者都失败回退 CSV（可能是改了扩展名的文本文件）。
// CSV 解析尝试 分隔符 × 编码（utf-8、iso-8859-1、windows-1252）的组合，
// 取第一个产出多列结果的组合；全部失败返回 ErrUnreadable。
func ReadFile(filename string, data []byte) (*model.Table, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnreadable)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		if t, err := readExcel(data); err == nil {
			return t, nil
		}
		return readCSV(data)
	case ".xls":
		if t, err := readExcel(data); err == nil {
			return t, nil
		}
		if t, err := readLegacyXLS(data); err == nil {
			return t, nil
		}
		return readCSV(data)
	case ".csv", ".txt", "":
		return readCSV(data)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %s", ErrUnreadable, ext)
	}
}

func readExcel(data []byte) (*model.Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	// 取第一个有数据的工作表
	for _, name := range sheets {
		rows, err := file.GetRows(name)
		if err != nil || len(rows) < 1 {
			continue
		}
		if t := tableFromRows(rows); t != nil {
			return t, nil
		}
	}
	return nil, errors.New("no sheet contains tabular data")
}

// readLegacyXLS 解析 BIFF 格式的老版 Excel 工作簿
func readLegacyXLS(data []byte) (*model.Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil {
			continue
		}
		var rows [][]string
		for r := 0; r < sheet.GetNumberRows(); r++ {
			row, err := sheet.GetRow(r)
			if err != nil {
				continue
			}
			var cells []string
			for _, col := range row.GetCols() {
				cells = append(cells, col.GetString())
			}
			rows = append(rows, cells)
		}
		if t := tableFromRows(rows); t != nil {
			return t, nil
		}
	}
	return nil, errors.New("no sheet contains tabular data")
}

func readCSV(data []byte) (*model.Table, error) {
	for _, decoded := range decodeCandidates(data) {
		for _, sep := range csvSeparators {
			t, err := parseCSV(decoded, sep)
			if err != nil {
				continue
			}
			// 单列结果多半是分隔符猜错了
			if len(t.Columns()) < 2 {
				continue
			}
			return t, nil
		}
	}
	return nil, ErrUnreadable
}

// decodeCandidates 按编码优先级产出解码后的文本
// 合法 UTF-8 直接用；否则尝试 ISO-8859-1 和 Windows-1252
func decodeCandidates(data []byte) []string {
	data = stripBOM(data)
	var out []string
	if utf8.Valid(data) {
		out = append(out, string(data))
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := io.ReadAll(cm.NewDecoder().Reader(bytes.NewReader(data)))
		if err != nil {
			continue
		}
		out = append(out, string(decoded))
	}
	return out
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

func parseCSV(text string, sep rune) (*model.Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	t := tableFromRows(rows)
	if t == nil {
		return nil, errors.New("no tabular data")
	}
	return t, nil
}

// tableFromRows 首行作表头，空白行丢弃，短行右侧补空
func tableFromRows(rows [][]string) *model.Table {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	if len(header) == 0 {
		return nil
	}
	var body [][]string
	for _, row := range rows[1:] {
		if rowBlank(row) {
			continue
		}
		padded := make([]string, len(header))
		copy(padded, row)
		body = append(body, padded)
	}
	t := model.NewTable(header, body)
	t.TrimHeaders()
	return t
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
