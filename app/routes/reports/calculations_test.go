package reports

import "testing"

func TestMonthsInRange(t *testing.T) {
	tests := []struct {
		name                                     string
		startMonth, startYear, endMonth, endYear int
		want                                     int
	}{
		{"full calendar year", 1, 2026, 12, 2026, 12},
		{"single month", 3, 2026, 3, 2026, 1},
		{"across year boundary", 11, 2025, 2, 2026, 4},
		{"multi year", 1, 2024, 12, 2026, 36},
		{"inverted range", 6, 2026, 3, 2026, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthsInRange(tt.startMonth, tt.startYear, tt.endMonth, tt.endYear)
			if got != tt.want {
				t.Errorf("MonthsInRange(%d/%d..%d/%d) = %d, want %d",
					tt.startMonth, tt.startYear, tt.endMonth, tt.endYear, got, tt.want)
			}
		})
	}
}

func TestComputeArrears(t *testing.T) {
	fee := 350.0

	t.Run("twelve months nine paid", func(t *testing.T) {
		row := &DebtorRow{}
		ComputeArrears(row, 12, 9, &fee)
		if row.MonthsOverdue != 3 {
			t.Errorf("MonthsOverdue = %d, want 3", row.MonthsOverdue)
		}
		if row.TotalOwed == nil || *row.TotalOwed != 3*fee {
			t.Errorf("TotalOwed = %v, want %v", row.TotalOwed, 3*fee)
		}
	})

	t.Run("no fee filter leaves total nil", func(t *testing.T) {
		row := &DebtorRow{}
		ComputeArrears(row, 12, 9, nil)
		if row.MonthsOverdue != 3 {
			t.Errorf("MonthsOverdue = %d, want 3", row.MonthsOverdue)
		}
		if row.TotalOwed != nil || row.FeeAmount != nil {
			t.Error("TotalOwed and FeeAmount should be nil without a fee filter")
		}
	})

	t.Run("overpaid clamps to zero", func(t *testing.T) {
		row := &DebtorRow{}
		ComputeArrears(row, 3, 5, &fee)
		if row.MonthsOverdue != 0 {
			t.Errorf("MonthsOverdue = %d, want 0", row.MonthsOverdue)
		}
		if row.TotalOwed == nil || *row.TotalOwed != 0 {
			t.Errorf("TotalOwed = %v, want 0", row.TotalOwed)
		}
	})

	t.Run("no history is fully overdue", func(t *testing.T) {
		row := &DebtorRow{}
		ComputeArrears(row, 6, 0, &fee)
		if row.MonthsOverdue != 6 {
			t.Errorf("MonthsOverdue = %d, want 6", row.MonthsOverdue)
		}
		if row.TotalOwed == nil || *row.TotalOwed != 6*fee {
			t.Errorf("TotalOwed = %v, want %v", row.TotalOwed, 6*fee)
		}
	})
}

func TestZeroFillMonths(t *testing.T) {
	out := ZeroFillMonths(map[int]float64{3: 1500, 7: 250.5})

	if len(out) != 12 {
		t.Fatalf("len = %d, want 12", len(out))
	}
	for i, row := range out {
		if row.Month != i+1 {
			t.Fatalf("out[%d].Month = %d, want %d", i, row.Month, i+1)
		}
	}
	if out[2].Total != 1500 || out[6].Total != 250.5 {
		t.Errorf("sums misplaced: %v", out)
	}
	if out[0].Total != 0 || out[11].Total != 0 {
		t.Errorf("empty months not zero-filled: %v", out)
	}
}
