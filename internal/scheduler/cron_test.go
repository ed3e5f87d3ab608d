package scheduler

import "testing"

func TestValidateCronExpr(t *testing.T) {
	valid := []string{
		"* * * * *",
		"0 3 * * *",
		"*/5 * * * *",
		"30 2 1 * 0",
	}
	for _, expr := range valid {
		if err := ValidateCronExpr(expr); err != nil {
			t.Errorf("ValidateCronExpr(%q) = %v, want nil", expr, err)
		}
	}

	invalid := []string{
		"",
		"not a cron",
		"61 * * * *",
		// 6-польный формат с секундами не поддерживается
		"0 0 3 * * *",
	}
	for _, expr := range invalid {
		if err := ValidateCronExpr(expr); err == nil {
			t.Errorf("ValidateCronExpr(%q) = nil, want error", expr)
		}
	}
}
