// Package spreadsheet implements the tabular interchange contract for bulk
// scholar import and export. Import accepts an xlsx workbook whose first row
// is a header row; columns are located by name with synonym fallbacks, so
// workbooks exported from differently labeled source systems still load.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/phdportal/internal/app/models"
)

// headerSynonyms maps a canonical column key to the accepted header spellings.
// Matching is case-insensitive on trimmed headers.
var headerSynonyms = map[string][]string{
	"fullName":        {"name", "full name", "scholar name", "candidate name"},
	"email":           {"email", "email id", "e-mail", "mail id"},
	"mobile":          {"mobile", "mobile no", "phone", "contact number"},
	"gender":          {"gender", "sex"},
	"category":        {"category", "community"},
	"certificates":    {"certificates", "certificate", "documents"},
	"program":         {"program", "programme", "program name", "course"},
	"programType":     {"program type", "programme type", "mode of study"},
	"type":            {"type", "scholar type", "admission type"},
	"facultyName":     {"faculty", "faculty name"},
	"departmentName":  {"department", "department name", "dept"},
	"ugDegree":        {"ug degree", "ug degree name"},
	"ugBranch":        {"ug branch", "ug specialization"},
	"ugUniversity":    {"ug university", "ug board/university"},
	"ugCollege":       {"ug college", "ug institution"},
	"ugMode":          {"ug mode", "ug mode of study"},
	"ugYearOfPassing": {"ug year of passing", "ug year", "ug passing year"},
	"ugPercentage":    {"ug percentage", "ug %", "ug marks %"},
	"ugCgpa":          {"ug cgpa", "ug gpa"},
	"ugClass":         {"ug class", "ug class obtained"},
	"ugDuration":      {"ug duration", "ug course duration"},
	"pgDegree":        {"pg degree", "pg degree name"},
	"pgBranch":        {"pg branch", "pg specialization"},
	"pgUniversity":    {"pg university", "pg board/university"},
	"pgCollege":       {"pg college", "pg institution"},
	"pgMode":          {"pg mode", "pg mode of study"},
	"pgYearOfPassing": {"pg year of passing", "pg year", "pg passing year"},
	"pgPercentage":    {"pg percentage", "pg %", "pg marks %"},
	"pgCgpa":          {"pg cgpa", "pg gpa"},
	"pgClass":         {"pg class", "pg class obtained"},
	"pgDuration":      {"pg duration", "pg course duration"},
	"exam1Name":       {"exam 1 name", "competitive exam 1"},
	"exam1Score":      {"exam 1 score", "competitive exam 1 score"},
	"exam1Year":       {"exam 1 year", "competitive exam 1 year"},
	"exam2Name":       {"exam 2 name", "competitive exam 2"},
	"exam2Score":      {"exam 2 score", "competitive exam 2 score"},
	"exam2Year":       {"exam 2 year", "competitive exam 2 year"},
	"exam3Name":       {"exam 3 name", "competitive exam 3"},
	"exam3Score":      {"exam 3 score", "competitive exam 3 score"},
	"exam3Year":       {"exam 3 year", "competitive exam 3 year"},
	"writtenMarks":    {"written marks", "written test marks"},
	"interviewMarks":  {"interview marks", "viva marks"},
	"totalScore":      {"total score", "total", "total marks"},
	"status":          {"status"},
}

// RowError reports a row that could not be imported. Row numbers are
// 1-based workbook rows, so the first data row is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseScholars reads scholar rows from an xlsx workbook. Rows missing the
// minimal identity columns (name plus email or mobile) are reported in the
// returned RowError slice; well-formed rows are returned regardless of other
// rows failing.
func ParseScholars(r io.Reader) ([]*models.Scholar, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	columns := resolveColumns(rows[0])

	var scholars []*models.Scholar
	var rowErrors []RowError
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		s := scholarFromRow(row, columns)
		if strings.TrimSpace(s.FullName) == "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "missing scholar name"})
			continue
		}
		if strings.TrimSpace(s.Email) == "" && strings.TrimSpace(s.Mobile) == "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "missing both email and mobile"})
			continue
		}
		scholars = append(scholars, s)
	}

	return scholars, rowErrors, nil
}

// resolveColumns maps canonical keys to column indexes using the synonym
// table. The first matching header wins per key.
func resolveColumns(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	columns := make(map[string]int)
	for key, synonyms := range headerSynonyms {
		for _, syn := range synonyms {
			for i, h := range normalized {
				if h == syn {
					columns[key] = i
					break
				}
			}
			if _, ok := columns[key]; ok {
				break
			}
		}
	}
	return columns
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func scholarFromRow(row []string, columns map[string]int) *models.Scholar {
	cell := func(key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	num := func(key string) float64 {
		v, err := strconv.ParseFloat(cell(key), 64)
		if err != nil {
			return 0
		}
		return v
	}

	s := &models.Scholar{
		FullName:     cell("fullName"),
		Email:        cell("email"),
		Mobile:       cell("mobile"),
		Gender:       cell("gender"),
		Category:     cell("category"),
		Certificates: cell("certificates"),

		Program:        cell("program"),
		ProgramType:    cell("programType"),
		Type:           cell("type"),
		FacultyName:    cell("facultyName"),
		DepartmentName: cell("departmentName"),

		UGDegree: cell("ugDegree"), UGBranch: cell("ugBranch"),
		UGUniversity: cell("ugUniversity"), UGCollege: cell("ugCollege"),
		UGMode: cell("ugMode"), UGYearOfPassing: cell("ugYearOfPassing"),
		UGPercentage: cell("ugPercentage"), UGCGPA: cell("ugCgpa"),
		UGClass: cell("ugClass"), UGDuration: cell("ugDuration"),

		PGDegree: cell("pgDegree"), PGBranch: cell("pgBranch"),
		PGUniversity: cell("pgUniversity"), PGCollege: cell("pgCollege"),
		PGMode: cell("pgMode"), PGYearOfPassing: cell("pgYearOfPassing"),
		PGPercentage: cell("pgPercentage"), PGCGPA: cell("pgCgpa"),
		PGClass: cell("pgClass"), PGDuration: cell("pgDuration"),

		Exam1Name: cell("exam1Name"), Exam1Score: cell("exam1Score"), Exam1Year: cell("exam1Year"),
		Exam2Name: cell("exam2Name"), Exam2Score: cell("exam2Score"), Exam2Year: cell("exam2Year"),
		Exam3Name: cell("exam3Name"), Exam3Score: cell("exam3Score"), Exam3Year: cell("exam3Year"),

		WrittenMarks:   num("writtenMarks"),
		InterviewMarks: num("interviewMarks"),
		TotalScore:     num("totalScore"),

		Status: cell("status"),
	}
	if s.Status == "" {
		s.Status = string(models.StatusPending)
	}
	return s
}

// exportHeaders is the fixed column order of exported workbooks.
var exportHeaders = []string{
	"Name", "Email", "Mobile", "Gender", "Category", "Certificates",
	"Program", "Faculty", "Department", "Type",
	"Written Marks", "Interview Marks", "Total Score",
	"Status", "Eligibility", "Supervisor", "Supervisor Status",
	"Dept Result", "Director Result",
}

// WriteScholars writes the given scholars as a single-sheet xlsx workbook
// with one header row.
func WriteScholars(w io.Writer, scholars []*models.Scholar) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range exportHeaders {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cellName, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, s := range scholars {
		supervisor := ""
		if s.SupervisorName != nil {
			supervisor = *s.SupervisorName
		}
		supervisorStatus := ""
		if s.SupervisorStatus != nil {
			supervisorStatus = *s.SupervisorStatus
		}
		values := []interface{}{
			s.FullName, s.Email, s.Mobile, s.Gender, s.Category, s.Certificates,
			s.Program, s.FacultyName, s.DepartmentName, string(s.CanonicalType()),
			s.WrittenMarks, s.InterviewMarks, s.TotalScore,
			s.Status, s.Eligibility, supervisor, supervisorStatus,
			s.DeptResult, s.ResultDir,
		}
		for colIdx, v := range values {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cellName, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
