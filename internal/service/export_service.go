package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
)

var (
	ErrExportGenerateFail = errors.New("failed to generate the workbook")
)

const (
	requestsSheet = "Requests"
	summarySheet  = "Summary"
)

var requestColumns = []struct {
	title string
	width float64
}{
	{"Request ID", 38},
	{"Student", 24},
	{"Student number", 16},
	{"Email", 30},
	{"Attire", 28},
	{"Size", 8},
	{"Status", 20},
	{"Start date", 12},
	{"End date", 12},
	{"Buffer days", 12},
	{"Available from", 14},
	{"Notes", 40},
	{"Created at", 22},
}

// ExportService spreadsheet export of attire requests.
// The workbook is returned as a buffer; the handler sets the download headers.
type ExportService interface {
	ExportRequests(ctx context.Context, req *dto.CalendarFilterRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportRequests
// ═══════════════════════════════════════════════════════════
//
// Sheets:
//   - "Requests": one row per request matching the filter
//   - "Summary":  request count per status across the whole table

func (s *exportService) ExportRequests(ctx context.Context, req *dto.CalendarFilterRequest) (*bytes.Buffer, string, error) {
	filter, err := requestFilter(req.Status, req.StudentID, req.AttireID, req.From, req.To)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.repo.AttireRequest.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("load export requests failed", zap.Error(err))
		return nil, "", err
	}

	counts, err := s.repo.AttireRequest.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("count requests by status failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(requestsSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// requests sheet
	for i, c := range requestColumns {
		col := colName(i)
		f.SetColWidth(requestsSheet, col, col, c.width)
		f.SetCellValue(requestsSheet, cell(col, 1), c.title)
	}
	f.SetCellStyle(requestsSheet, "A1", cell(colName(len(requestColumns)-1), 1), headerStyle)
	f.SetPanes(requestsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i := range rows {
		r := &rows[i]
		b := toBooking(r)

		student, number, email := "", "", ""
		if r.Student != nil {
			student, number, email = fullName(r.Student), r.Student.StudentNumber, r.Student.Email
		}
		attire, size := "", ""
		if r.Attire != nil {
			attire, size = r.Attire.Name, r.Attire.Size
		}

		values := []interface{}{
			r.AttireRequestID,
			student,
			number,
			email,
			attire,
			size,
			string(b.Status),
			rental.FormatDate(b.Start),
			rental.FormatDate(b.End),
			b.Buffer(),
			rental.FormatDate(rental.AddDays(b.BufferUntil(), 1)),
			r.Notes,
			r.CreatedAt.Format(timeLayout),
		}
		if err := f.SetSheetRow(requestsSheet, cell("A", i+2), &values); err != nil {
			s.logger.Error("write export row failed", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	// summary sheet
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 10)
	f.SetCellValue(summarySheet, "A1", "Status")
	f.SetCellValue(summarySheet, "B1", "Requests")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	row := 2
	var total int64
	for _, st := range rental.Statuses {
		n := counts[string(st)]
		total += n
		f.SetCellValue(summarySheet, cell("A", row), string(st))
		f.SetCellValue(summarySheet, cell("B", row), n)
		row++
	}
	// legacy text the migration could not map
	var legacy []string
	for status := range counts {
		if !rental.Status(status).Valid() {
			legacy = append(legacy, status)
		}
	}
	sort.Strings(legacy)
	for _, status := range legacy {
		total += counts[status]
		f.SetCellValue(summarySheet, cell("A", row), status)
		f.SetCellValue(summarySheet, cell("B", row), counts[status])
		row++
	}
	f.SetCellValue(summarySheet, cell("A", row), "Total")
	f.SetCellValue(summarySheet, cell("B", row), total)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attire-requests_%s.xlsx", s.now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
