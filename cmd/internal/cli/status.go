package cli

import (
	"fmt"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/output"
	"meety/cmd/internal/service"

	"github.com/spf13/cobra"
)

var shortcutVerbs = map[entity.Status]string{
	entity.StatusApproved:  "approve",
	entity.StatusCancelled: "cancel",
	entity.StatusConfirmed: "confirm",
}

func NewStatusCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "status <meeting-id> <status>",
		Short: "Set the status of a meeting",
		Long:  "Set the status of a meeting to pending, approved, cancelled or confirmed. Approving a meeting that overlaps an approved one is refused.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, deps, args[0], args[1])
		},
	}
}

// NewShortcutCmd builds "approve", "cancel" and "confirm".
func NewShortcutCmd(deps *Dependencies, status entity.Status) *cobra.Command {
	verb := shortcutVerbs[status]
	return &cobra.Command{
		Use:   verb + " <meeting-id>",
		Short: fmt.Sprintf("Mark a meeting as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, deps, args[0], string(status))
		},
	}
}

func setStatus(cmd *cobra.Command, deps *Dependencies, id, status string) error {
	req := &service.StatusUpdateRequest{MeetingID: id, NewStatus: status}
	meeting, apierr := deps.Meetings.UpdateStatus(cmd.Context(), req, deps.Config.Operator)
	if apierr != nil {
		return apierr
	}
	output.NewFormatter(deps.Out).Success(fmt.Sprintf("Meeting %s on %s %s-%s is now %s", meeting.MeetingID, meeting.Date, meeting.StartTime, meeting.EndTime, meeting.Status))
	return nil
}
