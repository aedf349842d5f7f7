// Package export writes processed leads to a spreadsheet workbook and to
// batch JSON files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Sheet column layouts. The order is part of the workbook contract.
var (
	companyColumns = []string{
		"Lead ID", "Company Name", "Website", "Primary Domain", "Platform",
		"Segment", "Country", "Employees", "Industry", "Founded",
		"LinkedIn URL", "Description",
	}
	contactColumns = []string{
		"Lead ID", "Company Name", "Name", "Title", "Email",
		"Email Verified", "LinkedIn URL", "Phone", "Location",
	}
	outreachColumns = []string{
		"Lead ID", "Company Name", "Research Summary", "Connection Request",
		"Follow-up", "Email Subject", "Email Body",
	}
	statusColumns = []string{
		"Lead ID", "Company Name", "Status", "Score", "Qualified",
		"Fit Notes", "Created At", "Updated At",
	}
)

// Workbook writes leads to a four-sheet xlsx workbook.
type Workbook struct {
	path string
}

// NewWorkbook creates a Workbook exporter targeting path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// ExportLeads writes all leads to the workbook, replacing any existing file.
// An empty lead list still produces a workbook with headers.
func (w *Workbook) ExportLeads(leads []*model.Lead) error {
	file := xlsx.NewFile()

	if err := w.addCompaniesSheet(file, leads); err != nil {
		return err
	}
	if err := w.addContactsSheet(file, leads); err != nil {
		return err
	}
	if err := w.addOutreachSheet(file, leads); err != nil {
		return err
	}
	if err := w.addStatusSheet(file, leads); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "export: create output dir")
		}
	}
	if err := file.Save(w.path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}

	zap.L().Info("export: workbook written",
		zap.String("path", w.path), zap.Int("leads", len(leads)))
	return nil
}

func (w *Workbook) addCompaniesSheet(file *xlsx.File, leads []*model.Lead) error {
	sheet, err := addSheet(file, "Companies", companyColumns)
	if err != nil {
		return err
	}
	for _, lead := range leads {
		c := lead.Company
		writeRow(sheet,
			lead.ID, c.Name, c.Website, c.PrimaryDomain, string(c.Platform),
			string(c.Segment), c.Country, intCell(c.EmployeeCount), c.Industry,
			intCell(c.FoundedYear), c.LinkedInURL, c.Description,
		)
	}
	return nil
}

func (w *Workbook) addContactsSheet(file *xlsx.File, leads []*model.Lead) error {
	sheet, err := addSheet(file, "Contacts", contactColumns)
	if err != nil {
		return err
	}
	for _, lead := range leads {
		dm := lead.DecisionMaker
		if dm == nil {
			continue
		}
		writeRow(sheet,
			lead.ID, lead.Company.Name, dm.Name, dm.Title, dm.Email,
			yesNo(dm.EmailVerified), dm.LinkedInURL, dm.Phone, dm.Location,
		)
	}
	return nil
}

func (w *Workbook) addOutreachSheet(file *xlsx.File, leads []*model.Lead) error {
	sheet, err := addSheet(file, "Outreach", outreachColumns)
	if err != nil {
		return err
	}
	for _, lead := range leads {
		o := lead.Outreach
		if o == nil {
			continue
		}
		writeRow(sheet,
			lead.ID, lead.Company.Name, o.ResearchSummary, o.ConnectionRequest,
			o.Followup, o.EmailSubject, o.EmailBody,
		)
	}
	return nil
}

func (w *Workbook) addStatusSheet(file *xlsx.File, leads []*model.Lead) error {
	sheet, err := addSheet(file, "Status", statusColumns)
	if err != nil {
		return err
	}
	for _, lead := range leads {
		writeRow(sheet,
			lead.ID, lead.Company.Name, string(lead.Status),
			fmt.Sprintf("%d", lead.Qualification.Score),
			yesNo(lead.Qualification.Qualified),
			lead.Qualification.FitNotes,
			lead.CreatedAt.Format(time.RFC3339),
			lead.UpdatedAt.Format(time.RFC3339),
		)
	}
	return nil
}

func addSheet(file *xlsx.File, name string, columns []string) (*xlsx.Sheet, error) {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "export: add sheet %s", name)
	}
	writeRow(sheet, columns...)
	return sheet, nil
}

func writeRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func intCell(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
