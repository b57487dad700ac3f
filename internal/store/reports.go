package store

import (
	"database/sql"
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// ErrReportNotFound 报表不存在
var ErrReportNotFound = errors.New("report not found")

// snapshotMeta JSON 摘要文件的内容
type snapshotMeta struct {
	Name             string    `json:"name"`
	OriginalFilename string    `json:"originalFilename"`
	ReportType       string    `json:"reportType"`
	UploadedAt       time.Time `json:"uploadedAt"`
	RecordCount      int       `json:"recordCount"`
	Columns          []string  `json:"columns"`
}

// SaveReport 保存一份标准化报表：数据文件落盘 + 元数据入库
// 同名报表按替换语义处理：旧行与旧数据文件一并清除。
// 落盘三份：CSV（标准化表格）、gob 快照（类型化记录）、JSON 摘要。
func (s *Store) SaveReport(name, originalFilename string, reportType model.ReportType, description string, t *model.Table, records []model.Record) (*model.ReportMeta, error) {
	base := uuid.New().String()
	dir := filepath.Join(s.dataDir, "saved_data")
	dataPath := filepath.Join(dir, base+".csv")
	snapshotPath := filepath.Join(dir, base+".gob")
	metaPath := filepath.Join(dir, base+".json")
	uploadedAt := time.Now()

	if err := writeCSV(dataPath, t); err != nil {
		return nil, err
	}
	if err := writeSnapshot(snapshotPath, records); err != nil {
		removeFiles(dataPath)
		return nil, err
	}
	if err := writeMeta(metaPath, snapshotMeta{
		Name:             name,
		OriginalFilename: originalFilename,
		ReportType:       string(reportType),
		UploadedAt:       uploadedAt,
		RecordCount:      len(records),
		Columns:          t.Columns(),
	}); err != nil {
		removeFiles(dataPath, snapshotPath)
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		removeFiles(dataPath, snapshotPath, metaPath)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// 替换语义：同名旧报表的数据文件稍后一并删除
	var oldData, oldSnapshot string
	err = tx.QueryRow(`SELECT data_path, snapshot_path FROM reports WHERE name = ?`, name).
		Scan(&oldData, &oldSnapshot)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		removeFiles(dataPath, snapshotPath, metaPath)
		return nil, fmt.Errorf("failed to query existing report: %w", err)
	}
	replacing := err == nil

	if replacing {
		if _, err := tx.Exec(`DELETE FROM reports WHERE name = ?`, name); err != nil {
			tx.Rollback()
			removeFiles(dataPath, snapshotPath, metaPath)
			return nil, fmt.Errorf("failed to delete existing report: %w", err)
		}
	}

	res, err := tx.Exec(`
		INSERT INTO reports (name, original_filename, report_type, uploaded_at, record_count, data_path, snapshot_path, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, name, originalFilename, string(reportType), uploadedAt, len(records), dataPath, snapshotPath, description)
	if err != nil {
		tx.Rollback()
		removeFiles(dataPath, snapshotPath, metaPath)
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		removeFiles(dataPath, snapshotPath, metaPath)
		return nil, fmt.Errorf("failed to get report id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		removeFiles(dataPath, snapshotPath, metaPath)
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	if replacing {
		removeFiles(oldData, oldSnapshot, sidecarPath(oldSnapshot))
	}

	return &model.ReportMeta{
		ID:               id,
		Name:             name,
		OriginalFilename: originalFilename,
		ReportType:       string(reportType),
		UploadedAt:       uploadedAt,
		RecordCount:      len(records),
		DataPath:         dataPath,
		SnapshotPath:     snapshotPath,
		Description:      description,
	}, nil
}

// ListReports 按上传时间倒序列出全部报表
func (s *Store) ListReports() ([]model.ReportMeta, error) {
	rows, err := s.db.Query(`
		SELECT id, name, original_filename, report_type, uploaded_at, record_count, data_path, snapshot_path, description
		FROM reports ORDER BY uploaded_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []model.ReportMeta
	for rows.Next() {
		var m model.ReportMeta
		if err := rows.Scan(&m.ID, &m.Name, &m.OriginalFilename, &m.ReportType, &m.UploadedAt,
			&m.RecordCount, &m.DataPath, &m.SnapshotPath, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetReport 按 ID 取报表元数据
func (s *Store) GetReport(id int64) (*model.ReportMeta, error) {
	var m model.ReportMeta
	err := s.db.QueryRow(`
		SELECT id, name, original_filename, report_type, uploaded_at, record_count, data_path, snapshot_path, description
		FROM reports WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.OriginalFilename, &m.ReportType, &m.UploadedAt,
		&m.RecordCount, &m.DataPath, &m.SnapshotPath, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &m, nil
}

// DeleteReport 删除报表：行与数据文件一并移除
func (s *Store) DeleteReport(id int64) error {
	m, err := s.GetReport(id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM reports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	removeFiles(m.DataPath, m.SnapshotPath, sidecarPath(m.SnapshotPath))
	return nil
}

// LoadRecords 从 gob 快照载入类型化记录
func (s *Store) LoadRecords(m *model.ReportMeta) ([]model.Record, error) {
	f, err := os.Open(m.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	var records []model.Record
	if err := gob.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return records, nil
}

// LoadTable 从 CSV 数据文件载入标准化表格
func (s *Store) LoadTable(m *model.ReportMeta) (*model.Table, error) {
	f, err := os.Open(m.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("data file is empty")
	}
	return model.NewTable(rows[0], rows[1:]), nil
}

func writeCSV(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create data file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.Rows() {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeSnapshot(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(records); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

func writeMeta(path string, meta snapshotMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal meta: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write meta: %w", err)
	}
	return nil
}

func sidecarPath(snapshotPath string) string {
	ext := filepath.Ext(snapshotPath)
	return snapshotPath[:len(snapshotPath)-len(ext)] + ".json"
}

func removeFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		os.Remove(p)
	}
}
