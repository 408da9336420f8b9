package cli

import (
	"time"

	"meety/cmd/internal/output"

	"github.com/spf13/cobra"
)

func NewPendingCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List meetings waiting for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meetings, apierr := deps.Meetings.ListPending(cmd.Context())
			if apierr != nil {
				return apierr
			}
			output.NewFormatter(deps.Out).MeetingTable(meetings)
			return nil
		},
	}
}

func NewListCmd(deps *Dependencies) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approved meetings in a date range",
		Long:  "List approved meetings dated between --from and --to (YYYY-MM-DD). Both default to today, in UTC.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now().UTC().Format(time.DateOnly)
			if from == "" {
				from = today
			}
			if to == "" {
				to = from
			}

			meetings, apierr := deps.Meetings.ListApproved(cmd.Context(), from, to)
			if apierr != nil {
				return apierr
			}
			output.NewFormatter(deps.Out).MeetingTable(meetings)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	return cmd
}
