package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	ExportTripList(list []dbmodels.BusinessTrip) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var tripHeaders = []string{"Номер", "Сотрудник", "Подразделение", "Место назначения", "Цель", "Дата начала", "Дата окончания", "Длительность (дн.)", "Статус", "Плановые расходы", "Фактические расходы", "Превышение", "Номер проекта"}

func (i impl) ExportTripList(list []dbmodels.BusinessTrip) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, tripHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeTripData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Командировки")
	return f.WriteToBuffer()
}

func writeTripData(f *excelize.File, sheet string, list []dbmodels.BusinessTrip, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(tripHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Номер"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.TripNumber); err != nil {
			return row, err
		}

		// "Сотрудник"
		col++
		if item.Employee != nil {
			if err := writeColumn(f, sheet, col, row, item.Employee.FullName); err != nil {
				return row, err
			}
		}

		// "Подразделение"
		col++
		if err := writeColumn(f, sheet, col, row, item.Department); err != nil {
			return row, err
		}

		// "Место назначения"
		col++
		if err := writeColumn(f, sheet, col, row, item.Destination); err != nil {
			return row, err
		}

		// "Цель"
		col++
		if err := writeColumn(f, sheet, col, row, item.Purpose); err != nil {
			return row, err
		}

		// "Дата начала"
		col++
		if !item.StartDate.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.StartDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Дата окончания"
		col++
		if !item.EndDate.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.EndDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Длительность (дн.)"
		col++
		if err := writeColumn(f, sheet, col, row, item.Duration); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Плановые расходы"
		col++
		if err := writeColumn(f, sheet, col, row, item.EstimatedCosts.InexactFloat64()); err != nil {
			return row, err
		}

		// "Фактические расходы"
		col++
		if err := writeColumn(f, sheet, col, row, item.ActualCosts.InexactFloat64()); err != nil {
			return row, err
		}

		// "Превышение"
		col++
		if err := writeColumn(f, sheet, col, row, item.Overrun().InexactFloat64()); err != nil {
			return row, err
		}

		// "Номер проекта"
		col++
		if err := writeColumn(f, sheet, col, row, item.ProjectNumber); err != nil {
			return row, err
		}
	}
	return row, nil
}
