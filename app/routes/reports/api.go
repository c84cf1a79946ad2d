package reports

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func parseDebtorFilter(c *fiber.Ctx) (DebtorFilter, error) {
	now := time.Now()
	f := DebtorFilter{
		StartMonth: c.QueryInt("start_month", 1),
		StartYear:  c.QueryInt("start_year", now.Year()),
		EndMonth:   c.QueryInt("end_month", int(now.Month())),
		EndYear:    c.QueryInt("end_year", now.Year()),
		FeeName:    c.Query("payment_type"),
		MinOverdue: c.QueryInt("months", 1),
	}
	if f.StartMonth < 1 || f.StartMonth > 12 || f.EndMonth < 1 || f.EndMonth > 12 {
		return f, fiber.NewError(fiber.StatusUnprocessableEntity, "Months must be between 1 and 12")
	}
	if MonthsInRange(f.StartMonth, f.StartYear, f.EndMonth, f.EndYear) == 0 {
		return f, fiber.NewError(fiber.StatusUnprocessableEntity, "End of range is before its start")
	}
	if f.MinOverdue < 0 {
		f.MinOverdue = 0
	}
	return f, nil
}

// GetDebtorsAPI returns properties whose overdue-month count over the
// requested range meets the threshold.
func GetDebtorsAPI(c *fiber.Ctx, db *sql.DB) error {
	f, err := parseDebtorFilter(c)
	if err != nil {
		return err
	}

	debtors, err := queryDebtors(c.Context(), db, f)
	if err != nil {
		slog.Error("debtors report failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate debtors report")
	}

	return c.JSON(fiber.Map{"success": true, "data": debtors})
}

// ExportDebtorsAPI renders the same report as an xlsx attachment.
func ExportDebtorsAPI(c *fiber.Ctx, db *sql.DB) error {
	f, err := parseDebtorFilter(c)
	if err != nil {
		return err
	}

	debtors, err := queryDebtors(c.Context(), db, f)
	if err != nil {
		slog.Error("debtors export failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate debtors report")
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Debtors"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Community", "Street", "Number", "Resident", "Expected", "Paid", "Overdue", "Fee Amount", "Total Owed", "Last Payment"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}

	for i, d := range debtors {
		row := i + 2
		values := []interface{}{d.Community, d.StreetName, d.StreetNumber, "", d.ExpectedMonths, d.PaidMonths, d.MonthsOverdue, "", "", ""}
		if d.ResidentName != nil {
			values[3] = *d.ResidentName
		}
		if d.FeeAmount != nil {
			values[7] = *d.FeeAmount
		}
		if d.TotalOwed != nil {
			values[8] = *d.TotalOwed
		}
		if d.LastPaymentDate != nil {
			values[9] = d.LastPaymentDate.Format("2006-01-02")
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			file.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		slog.Error("debtors export encode failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to encode report")
	}

	filename := fmt.Sprintf("debtors_%d-%02d_%d-%02d.xlsx", f.StartYear, f.StartMonth, f.EndYear, f.EndMonth)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// GetIncomeAPI returns twelve month buckets of collected income for a year.
func GetIncomeAPI(c *fiber.Ctx, db *sql.DB) error {
	year := c.QueryInt("year", time.Now().Year())
	if year < 2000 || year > 2100 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Year must be between 2000 and 2100")
	}

	income, err := queryIncome(c.Context(), db, year, c.Query("payment_type"))
	if err != nil {
		slog.Error("income report failed", "error", err, "year", year)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate income report")
	}

	return c.JSON(fiber.Map{"success": true, "data": income})
}
