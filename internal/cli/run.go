package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRunCmd создаёт группу команд для управления runs.
func NewRunCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Manage runs",
	}

	cmd.AddCommand(
		newRunListCmd(clientFn, outputFn),
		newRunStartCmd(clientFn, outputFn),
		newRunShowCmd(clientFn, outputFn),
	)

	return cmd
}

func newRunListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var pipelineID string
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runs, err := client.ListRuns(ListRunsOpts{
				PipelineID: pipelineID,
				Status:     status,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			headers := []string{"ID", "PIPELINE_ID", "STATUS", "CREATED"}
			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{r.ID, r.PipelineID, r.Status, r.CreatedAt}
			}

			out.Print(headers, rows, runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&pipelineID, "pipeline-id", "", "Filter by pipeline ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PENDING, RUNNING, SUCCEEDED, FAILED)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	return cmd
}

func newRunStartCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "start PIPELINE_ID",
		Short: "Queue a new run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			run, err := client.CreateRun(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Run queued: %s", run.ID))
			out.Print(
				[]string{"ID", "PIPELINE_ID", "STATUS", "CREATED"},
				[][]string{{run.ID, run.PipelineID, run.Status, run.CreatedAt}},
				run,
			)
			return nil
		},
	}
}

func newRunShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			run, err := client.GetRun(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "PIPELINE_ID", "STATUS", "ERROR", "CREATED"},
				[][]string{{run.ID, run.PipelineID, run.Status, run.Error, run.CreatedAt}},
				run,
			)
			return nil
		},
	}
}
