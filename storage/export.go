package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"student_manager/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var unsafeName = regexp.MustCompile(`[^a-z0-9_-]+`)

// ExportService writes report tables into xlsx workbooks under a local directory
type ExportService struct {
	dir string
	now func() time.Time
}

// NewExportService creates an exporter writing to the configured export directory
func NewExportService() *ExportService {
	return NewExportServiceAt(config.AppConfig.ExportDir)
}

func NewExportServiceAt(dir string) *ExportService {
	return &ExportService{dir: dir, now: time.Now}
}

// FileName builds <report>-YYYYMMDD-<8 hex>.xlsx
func (s *ExportService) FileName(report string) string {
	base := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(report), "_"), "_")
	if base == "" {
		base = "report"
	}
	return fmt.Sprintf("%s-%s-%s.xlsx", base, s.now().Format("20060102"), uuid.NewString()[:8])
}

// Export writes one sheet with a bold header row and returns the path of the file
func (s *ExportService) Export(report string, headers []string, rows [][]interface{}) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating export directory")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := report
	if sheet == "" {
		sheet = "Report"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", errors.Wrap(err, "naming sheet")
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", errors.Wrap(err, "writing header")
		}
	}
	if len(headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return "", errors.Wrap(err, "creating header style")
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return "", errors.Wrap(err, "styling header")
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", errors.Wrapf(err, "writing cell %s", cell)
			}
		}
	}

	path := filepath.Join(s.dir, s.FileName(report))
	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrap(err, "saving workbook")
	}

	logrus.WithFields(logrus.Fields{
		"report": report,
		"rows":   len(rows),
		"path":   path,
	}).Info("Report exported")
	return path, nil
}
