package model

import "strings"

// Table 上传报表的列式表格数据
// 保留原始列名与列顺序，标准化过程只追加列，不删除、不重命名原始列
type Table struct {
	cols  []string
	cells map[string][]string
	rows  int
}

// NewTable 创建表格
// rows 中缺失的单元格补空字符串，多出的单元格丢弃
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		cols:  make([]string, 0, len(columns)),
		cells: make(map[string][]string, len(columns)),
		rows:  len(rows),
	}
	for i, col := range columns {
		values := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				values[r] = row[i]
			}
		}
		t.cols = append(t.cols, col)
		t.cells[col] = values
	}
	return t
}

// EmptyTable 创建无数据行的表格
func EmptyTable(columns []string) *Table {
	return NewTable(columns, nil)
}

// Columns 列名列表（按原始顺序，追加列在末尾）
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// RowCount 数据行数
func (t *Table) RowCount() int {
	return t.rows
}

// HasColumn 是否存在指定列（精确匹配）
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cells[name]
	return ok
}

// FindColumn 查找列名（先精确匹配，再忽略大小写与首尾空格）
func (t *Table) FindColumn(name string) (string, bool) {
	if _, ok := t.cells[name]; ok {
		return name, true
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, col := range t.cols {
		if strings.ToLower(strings.TrimSpace(col)) == want {
			return col, true
		}
	}
	return "", false
}

// Column 获取列值（副本）；列不存在返回 nil
func (t *Table) Column(name string) []string {
	values, ok := t.cells[name]
	if !ok {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Cell 获取单元格值；越界或列不存在返回空字符串
func (t *Table) Cell(name string, row int) string {
	values, ok := t.cells[name]
	if !ok || row < 0 || row >= len(values) {
		return ""
	}
	return values[row]
}

// SetColumn 设置列值；列不存在时追加到末尾
// values 长度不足补空字符串，超长截断
func (t *Table) SetColumn(name string, values []string) {
	fixed := make([]string, t.rows)
	copy(fixed, values)
	if _, ok := t.cells[name]; !ok {
		t.cols = append(t.cols, name)
	}
	t.cells[name] = fixed
}

// FillColumn 以同一默认值追加/覆盖整列
func (t *Table) FillColumn(name, value string) {
	values := make([]string, t.rows)
	for i := range values {
		values[i] = value
	}
	t.SetColumn(name, values)
}

// RenameColumn 重命名列；目标列已存在或源列不存在时不做任何事
// 仅供 Chemical Spend 报表的 NetSuite 表头归一使用，其他格式不重命名原始列
func (t *Table) RenameColumn(from, to string) bool {
	values, ok := t.cells[from]
	if !ok {
		return false
	}
	if _, exists := t.cells[to]; exists {
		return false
	}
	for i, col := range t.cols {
		if col == from {
			t.cols[i] = to
			break
		}
	}
	delete(t.cells, from)
	t.cells[to] = values
	return true
}

// DropColumn 删除列，返回是否删除
func (t *Table) DropColumn(name string) bool {
	if _, ok := t.cells[name]; !ok {
		return false
	}
	delete(t.cells, name)
	for i, col := range t.cols {
		if col == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)
			break
		}
	}
	return true
}

// DropBlankColumns 删除整列为空的列，返回被删除的列名
func (t *Table) DropBlankColumns() []string {
	var dropped []string
	for _, col := range t.Columns() {
		blank := true
		for _, v := range t.cells[col] {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			t.DropColumn(col)
			dropped = append(dropped, col)
		}
	}
	return dropped
}

// TrimHeaders 去除列名首尾空格（保留列名本身，不做其他改写）
func (t *Table) TrimHeaders() {
	for i, col := range t.cols {
		trimmed := strings.TrimSpace(col)
		if trimmed == col {
			continue
		}
		if _, exists := t.cells[trimmed]; exists {
			continue
		}
		t.cols[i] = trimmed
		t.cells[trimmed] = t.cells[col]
		delete(t.cells, col)
	}
}

// Row 获取整行数据（列名 -> 值）
func (t *Table) Row(i int) map[string]string {
	row := make(map[string]string, len(t.cols))
	for _, col := range t.cols {
		row[col] = t.Cell(col, i)
	}
	return row
}

// Rows 按列顺序导出所有行（用于 CSV 写出）
func (t *Table) Rows() [][]string {
	out := make([][]string, t.rows)
	for r := 0; r < t.rows; r++ {
		row := make([]string, len(t.cols))
		for i, col := range t.cols {
			row[i] = t.cells[col][r]
		}
		out[r] = row
	}
	return out
}

// Clone 深拷贝表格
func (t *Table) Clone() *Table {
	clone := &Table{
		cols:  make([]string, len(t.cols)),
		cells: make(map[string][]string, len(t.cells)),
		rows:  t.rows,
	}
	copy(clone.cols, t.cols)
	for col, values := range t.cells {
		v := make([]string, len(values))
		copy(v, values)
		clone.cells[col] = v
	}
	return clone
}
