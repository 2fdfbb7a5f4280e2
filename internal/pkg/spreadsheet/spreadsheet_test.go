package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/phdportal/internal/app/models"
)

func buildWorkbook(t *testing.T, headers []string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return &buf
}

func TestParseScholarsHeaderSynonyms(t *testing.T) {
	// headers use synonym spellings rather than canonical ones
	buf := buildWorkbook(t,
		[]string{"Candidate Name", "Mail ID", "Phone", "Programme", "Faculty Name", "Total Marks"},
		[][]interface{}{
			{"Asha Rao", "asha@example.edu", "9876543210", "Ph.D. - Chemistry", "Faculty of Science and Humanities", 78.5},
		},
	)

	scholars, rowErrors, err := ParseScholars(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, scholars, 1)

	s := scholars[0]
	assert.Equal(t, "Asha Rao", s.FullName)
	assert.Equal(t, "asha@example.edu", s.Email)
	assert.Equal(t, "9876543210", s.Mobile)
	assert.Equal(t, "Ph.D. - Chemistry", s.Program)
	assert.Equal(t, "Faculty of Science and Humanities", s.FacultyName)
	assert.Equal(t, 78.5, s.TotalScore)
	assert.Equal(t, string(models.StatusPending), s.Status)
}

func TestParseScholarsRowErrors(t *testing.T) {
	buf := buildWorkbook(t,
		[]string{"Name", "Email", "Mobile"},
		[][]interface{}{
			{"", "no-name@example.edu", "9000000000"},
			{"No Contact", "", ""},
			{"Valid Row", "valid@example.edu", ""},
		},
	)

	scholars, rowErrors, err := ParseScholars(buf)
	require.NoError(t, err)
	require.Len(t, scholars, 1)
	assert.Equal(t, "Valid Row", scholars[0].FullName)

	require.Len(t, rowErrors, 2)
	assert.Equal(t, 2, rowErrors[0].Row)
	assert.Equal(t, 3, rowErrors[1].Row)
}

func TestWriteScholarsRoundTrip(t *testing.T) {
	supervisor := "Dr. Kumar"
	admitted := "Admitted"
	scholars := []*models.Scholar{
		{
			FullName: "Asha Rao", Email: "asha@example.edu", Mobile: "9876543210",
			Program: "Ph.D. - Chemistry", FacultyName: "Faculty of Science and Humanities",
			Type: "ft", TotalScore: 81.2, Status: "Forwarded to RC",
			SupervisorName: &supervisor, SupervisorStatus: &admitted,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteScholars(&buf, scholars))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Asha Rao", rows[1][0])
	assert.Equal(t, string(models.TypeFullTime), rows[1][9])
	assert.Equal(t, "Dr. Kumar", rows[1][15])
}
