package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	dbmodels "business-trips-backend/models/db"
)

const dateLayout = "02.01.2006"

// GenerateTripOrder формирует командировочное удостоверение по заявке.
func GenerateTripOrder(rec dbmodels.BusinessTrip) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateTripOrder panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 12, "КОМАНДИРОВОЧНОЕ УДОСТОВЕРЕНИЕ", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("№ %s от %s", rec.TripNumber, rec.CreatedAt.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.FullName
	}
	writeRow(pdf, "Сотрудник", employeeName)
	writeRow(pdf, "Подразделение", rec.Department)
	writeRow(pdf, "Место назначения", rec.Destination)
	writeRow(pdf, "Цель командировки", rec.Purpose)
	writeRow(pdf, "Принимающая сторона", rec.ReceivingParty)
	writeRow(pdf, "Дата начала", rec.StartDate.Format(dateLayout))
	writeRow(pdf, "Дата окончания", rec.EndDate.Format(dateLayout))
	writeRow(pdf, "Длительность", fmt.Sprintf("%d дн.", rec.Duration))
	writeRow(pdf, "Номер проекта", rec.ProjectNumber)
	writeRow(pdf, "Плановые расходы", rec.EstimatedCosts.StringFixed(2))
	if rec.ApprovalDate != nil {
		writeRow(pdf, "Дата согласования", rec.ApprovalDate.Format(dateLayout))
	}
	pdf.Ln(12)

	// подписи без данных, заполняются от руки
	writeRow(pdf, "Руководитель", "_________________________")
	pdf.Ln(4)
	writeRow(pdf, "Сотрудник", "_________________________")

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 8, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, value, "", "L", false)
}
