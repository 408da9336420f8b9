package cli

import (
	"context"
	"io"

	"meety/cmd/internal/config"
	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/service"
	"meety/cmd/internal/utils/apierror"
	"meety/cmd/internal/version"

	"github.com/spf13/cobra"
)

type MeetingService interface {
	ListPending(ctx context.Context) ([]*entity.Meeting, apierror.ErrorResponse)
	ListApproved(ctx context.Context, startDate, endDate string) ([]*entity.Meeting, apierror.ErrorResponse)
	UpdateStatus(ctx context.Context, req *service.StatusUpdateRequest, operator string) (*entity.Meeting, apierror.ErrorResponse)
}

type Dependencies struct {
	Meetings MeetingService
	Config   *config.Config
	Out      io.Writer
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meetyctl",
		Short:         "Review and approve meeting requests",
		Long:          "meetyctl lists pending and approved meetings and moves meetings between statuses, using the same store as the booking assistant.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.SetOut(deps.Out)

	rootCmd.AddCommand(NewPendingCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewStatusCmd(deps))
	for _, status := range []entity.Status{entity.StatusApproved, entity.StatusCancelled, entity.StatusConfirmed} {
		rootCmd.AddCommand(NewShortcutCmd(deps, status))
	}

	return rootCmd
}
