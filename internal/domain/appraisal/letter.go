package appraisal

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// GenerateLetter renders the appraisal outcome letter as a PDF. Visibility
// matches Get: the employee, the forming manager, and HR.
func (s *Service) GenerateLetter(ctx context.Context, actorID, actorRole, appraisalID string) ([]byte, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return nil, err
	}
	if !canView(actorID, actorRole, a) {
		return nil, ErrForbidden
	}

	employee, err := s.directory.GetUser(ctx, a.EmployeeID)
	if err != nil {
		return nil, err
	}
	manager, err := s.directory.GetUser(ctx, a.ManagerID)
	if err != nil {
		return nil, err
	}
	period, err := s.store.GetPeriod(ctx, a.PeriodID)
	if err != nil {
		return nil, err
	}

	return renderLetter(a, employee.FullName(), manager.FullName(), period)
}

func renderLetter(a Appraisal, employeeName, managerName string, period Period) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Appraisal Letter")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Appraised by: %s", managerName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s (%s to %s)", period.Title,
		period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", StatusLabel(a.Status)))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Overall: %.1f%%", a.OverallPercentage))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Task Completion: %.1f%%", a.TaskCompletionScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Work Quality: %.1f%%", a.QualityScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Timeliness: %.1f%%", a.TimelinessScore))
	pdf.Ln(10)
	pdf.MultiCell(0, 8, fmt.Sprintf("Remarks: %s", a.FinalRemarks), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
