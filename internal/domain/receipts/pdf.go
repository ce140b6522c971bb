package receipts

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/payroll"
)

var monthNames = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return monthNames[0]
	}
	return monthNames[month-1]
}

// RenderSalaryPDF renders a payslip-style receipt for a computed payment.
func (s *Service) RenderSalaryPDF(ctx context.Context, payment *payroll.SalaryPayment) ([]byte, error) {
	emp, err := s.Employees.GetEmployee(ctx, payment.EmployeeID)
	if err != nil {
		return nil, err
	}
	number := SalaryReceiptNumber(payment.Year, payment.Month, emp.Matricule)

	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	s.header(pdf, translate, "BULLETIN DE PAIE")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.Cell(0, 8, translate("EMPLOYÉ"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, translate(fmt.Sprintf("Nom : %s    Matricule : %s", emp.FullName(), emp.Matricule)))
	pdf.Ln(7)
	pdf.Cell(0, 7, translate(fmt.Sprintf("Période : %s %d", monthName(payment.Month), payment.Year)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(26, 54, 93)
	pdf.Cell(0, 8, translate("DÉTAIL DU SALAIRE"))
	pdf.Ln(10)

	rows := []struct {
		label  string
		amount float64
		prefix string
	}{
		{"Salaire de base", payment.BaseSalary, ""},
		{"Primes et indemnités", payment.Bonus, "+"},
		{"Retenues et déductions", payment.Deductions, "-"},
		{"Avances sur salaire", payment.TotalAdvances, "-"},
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, row := range rows {
		pdf.CellFormat(110, 7, translate(row.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, translate(row.prefix+s.Settings.FormatCurrency(row.amount)), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(26, 54, 93)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(110, 9, "SALAIRE NET", "", 0, "L", true, 0, "")
	pdf.CellFormat(60, 9, translate(s.Settings.FormatCurrency(payment.NetSalary)), "", 1, "R", true, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.Cell(0, 6, translate(fmt.Sprintf("Montant payé : %s", s.Settings.FormatCurrency(payment.AmountPaid))))
	pdf.Ln(6)
	pdf.Cell(0, 6, translate(fmt.Sprintf("Reste à payer : %s", s.Settings.FormatCurrency(payment.RemainingAmount))))
	if payment.PaymentDate != nil {
		pdf.Ln(6)
		pdf.Cell(0, 6, translate(fmt.Sprintf("Date de paiement : %s", payment.PaymentDate.Format("02/01/2006"))))
	}

	s.footer(pdf, translate, number)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderAdvancePDF renders a receipt for an approved advance.
func (s *Service) RenderAdvancePDF(ctx context.Context, advance *advances.Advance) ([]byte, error) {
	emp, err := s.Employees.GetEmployee(ctx, advance.EmployeeID)
	if err != nil {
		return nil, err
	}
	number := AdvanceReceiptNumber(time.Now().UTC())

	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	s.header(pdf, translate, "REÇU D'AVANCE SUR SALAIRE")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.Cell(0, 7, translate(fmt.Sprintf("Nom : %s    Matricule : %s", emp.FullName(), emp.Matricule)))
	pdf.Ln(7)
	pdf.Cell(0, 7, translate(fmt.Sprintf("Période concernée : %s %d", monthName(advance.Month), advance.Year)))
	pdf.Ln(7)
	if advance.Reason != "" {
		pdf.Cell(0, 7, translate(fmt.Sprintf("Motif : %s", advance.Reason)))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(26, 54, 93)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(110, 10, "MONTANT DE L'AVANCE", "", 0, "L", true, 0, "")
	pdf.CellFormat(60, 10, translate(s.Settings.FormatCurrency(advance.Amount)), "", 1, "R", true, 0, "")

	if advance.ApprovalDate != nil {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.Cell(0, 6, translate(fmt.Sprintf("Approuvée le : %s", advance.ApprovalDate.Format("02/01/2006"))))
	}

	s.footer(pdf, translate, number)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) header(pdf *gofpdf.Fpdf, translate func(string) string, title string) {
	cfg := s.Settings.Get()

	pdf.SetFillColor(26, 54, 93)
	pdf.Rect(0, 0, 210, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(20, 20, translate(cfg.CompanyName))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 28, translate(cfg.CompanyAddress))
	pdf.Text(20, 34, translate(cfg.CompanyPhone))

	pdf.SetTextColor(26, 54, 93)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(20, 50)
	pdf.CellFormat(170, 10, translate(title), "", 1, "C", false, 0, "")
	pdf.SetDrawColor(26, 54, 93)
	pdf.SetLineWidth(0.5)
	pdf.Line(20, 62, 190, 62)
	pdf.SetXY(20, 70)
}

func (s *Service) footer(pdf *gofpdf.Fpdf, translate func(string) string, number string) {
	_, pageHeight := pdf.GetPageSize()
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pageHeight-25, 190, pageHeight-25)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Text(20, pageHeight-18, translate(fmt.Sprintf("Reçu N° %s", number)))
	pdf.Text(90, pageHeight-18, translate(fmt.Sprintf("Généré le %s", time.Now().Format("02/01/2006"))))
	pdf.Text(160, pageHeight-18, "Document officiel")
}
