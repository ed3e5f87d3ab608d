package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewPipelineCmd создаёт группу команд для управления pipelines.
func NewPipelineCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Manage pipelines",
	}

	cmd.AddCommand(
		newPipelineListCmd(clientFn, outputFn),
		newPipelineCreateCmd(clientFn, outputFn),
		newPipelineShowCmd(clientFn, outputFn),
		newPipelineUpdateCmd(clientFn, outputFn),
		newPipelineDeleteCmd(clientFn, outputFn),
		newPipelineValidateCmd(clientFn, outputFn),
		newPipelineExecuteCmd(clientFn, outputFn),
	)

	return cmd
}

func newPipelineListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pipelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			pipelines, err := client.ListPipelines()
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "UPDATED"}
			rows := make([][]string, len(pipelines))
			for i, p := range pipelines {
				rows[i] = []string{p.ID, p.Name, p.UpdatedAt}
			}

			out.Print(headers, rows, pipelines)
			return nil
		},
	}
}

func newPipelineCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name string
	var graphFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := CreatePipelineRequest{Name: name}

			if graphFile != "" {
				data, err := os.ReadFile(graphFile)
				if err != nil {
					return fmt.Errorf("failed to read graph file: %w", err)
				}
				if !json.Valid(data) {
					return fmt.Errorf("graph file is not valid JSON")
				}
				req.Graph = json.RawMessage(data)
			}

			p, err := client.CreatePipeline(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Pipeline created: %s", p.ID))
			out.Print(
				[]string{"ID", "NAME", "UPDATED"},
				[][]string{{p.ID, p.Name, p.UpdatedAt}},
				p,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pipeline name (required)")
	cmd.Flags().StringVar(&graphFile, "graph-file", "", "Path to graph JSON file")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newPipelineShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show pipeline details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			p, err := client.GetPipeline(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "NAME", "CREATED", "UPDATED"},
				[][]string{{p.ID, p.Name, p.CreatedAt, p.UpdatedAt}},
				p,
			)
			return nil
		},
	}
}

func newPipelineUpdateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name string
	var graphFile string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := UpdatePipelineRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if graphFile != "" {
				data, err := os.ReadFile(graphFile)
				if err != nil {
					return fmt.Errorf("failed to read graph file: %w", err)
				}
				if !json.Valid(data) {
					return fmt.Errorf("graph file is not valid JSON")
				}
				req.Graph = json.RawMessage(data)
			}

			p, err := client.UpdatePipeline(args[0], req)
			if err != nil {
				return err
			}

			out.Success("Pipeline updated")
			out.Print(
				[]string{"ID", "NAME", "UPDATED"},
				[][]string{{p.ID, p.Name, p.UpdatedAt}},
				p,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New pipeline name")
	cmd.Flags().StringVar(&graphFile, "graph-file", "", "Path to graph JSON file")

	return cmd
}

func newPipelineDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeletePipeline(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Pipeline deleted: %s", args[0]))
			return nil
		},
	}
}

func newPipelineValidateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "validate ID",
		Short: "Check pipeline readiness for execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			v, err := client.ValidatePipeline(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"VALID", "MESSAGE"},
				[][]string{{fmt.Sprintf("%t", v.IsValid), v.Message}},
				v,
			)
			return nil
		},
	}
}

func newPipelineExecuteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "execute ID",
		Short: "Execute a pipeline synchronously",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			res, err := client.ExecutePipeline(args[0])
			if err != nil {
				return err
			}

			if res.Result.Success {
				out.Success("Execution succeeded")
			} else {
				out.Error("Execution failed: " + res.Result.Message)
			}

			out.Print(
				[]string{"SUCCESS", "MESSAGE"},
				[][]string{{fmt.Sprintf("%t", res.Result.Success), res.Result.Message}},
				res,
			)
			return nil
		},
	}
}
