package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewScheduleCmd создаёт группу команд для управления schedules.
func NewScheduleCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage schedules",
	}

	cmd.AddCommand(
		newScheduleListCmd(clientFn, outputFn),
		newScheduleCreateCmd(clientFn, outputFn),
		newScheduleShowCmd(clientFn, outputFn),
		newScheduleEnableCmd(clientFn, outputFn),
		newScheduleDisableCmd(clientFn, outputFn),
		newScheduleDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func scheduleRow(s *ScheduleResponse) []string {
	return []string{s.ID, s.PipelineID, s.Name, s.CronExpr, strconv.FormatBool(s.Enabled)}
}

var scheduleHeaders = []string{"ID", "PIPELINE_ID", "NAME", "CRON", "ENABLED"}

func newScheduleListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedules, err := client.ListSchedules()
			if err != nil {
				return err
			}

			rows := make([][]string, len(schedules))
			for i := range schedules {
				rows[i] = scheduleRow(&schedules[i])
			}

			out.Print(scheduleHeaders, rows, schedules)
			return nil
		},
	}
}

func newScheduleCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name string
	var cronExpr string
	var enabled bool

	cmd := &cobra.Command{
		Use:   "create PIPELINE_ID",
		Short: "Create a schedule for a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedule, err := client.CreateSchedule(args[0], CreateScheduleRequest{
				Name:     name,
				CronExpr: cronExpr,
				Enabled:  enabled,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule created: %s", schedule.ID))
			out.Print(scheduleHeaders, [][]string{scheduleRow(schedule)}, schedule)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Schedule name")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression (required)")
	cmd.Flags().BoolVar(&enabled, "enabled", true, "Enable schedule immediately")
	cmd.MarkFlagRequired("cron")

	return cmd
}

func newScheduleShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show schedule details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedule, err := client.GetSchedule(args[0])
			if err != nil {
				return err
			}

			out.Print(scheduleHeaders, [][]string{scheduleRow(schedule)}, schedule)
			return nil
		},
	}
}

func newScheduleEnableCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "enable ID",
		Short: "Enable a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedule, err := client.EnableSchedule(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule enabled: %s", schedule.ID))
			return nil
		},
	}
}

func newScheduleDisableCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "disable ID",
		Short: "Disable a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedule, err := client.DisableSchedule(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule disabled: %s", schedule.ID))
			return nil
		},
	}
}

func newScheduleDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteSchedule(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Schedule deleted: %s", args[0]))
			return nil
		},
	}
}
