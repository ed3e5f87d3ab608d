package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений (стандартный 5-польный формат).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronExpr проверяет валидность cron-выражения.
func ValidateCronExpr(cronExpr string) error {
	_, err := cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}
