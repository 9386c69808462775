package cli

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/eventsync/internal/models"
	"github.com/spf13/cobra"
)

var (
	eventsStatus string
	eventsLimit  int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List and review stored events",
	Long: `Inspect the event store and move records through their lifecycle.

Examples:
  eventsync events list
  eventsync events list --status pending
  eventsync events approve 8x2kd91h
  eventsync events reject 8x2kd91h`,
	RunE: runEventsList,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored events",
	RunE:  runEventsList,
}

var eventsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsApprove,
}

var eventsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsReject,
}

func init() {
	eventsCmd.PersistentFlags().StringVarP(&eventsStatus, "status", "s", "", "filter by status (pending/approved/rejected)")
	eventsCmd.PersistentFlags().IntVarP(&eventsLimit, "limit", "n", 50, "max results")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsApproveCmd)
	eventsCmd.AddCommand(eventsRejectCmd)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	events, err := dbClient.ListEvents(ctx, models.EventStatus(eventsStatus), eventsLimit)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	fmt.Printf("Events (%d):\n\n", len(events))
	for _, ev := range events {
		id, err := models.RecordIDString(ev.ID)
		if err != nil {
			id = "?"
		}
		fmt.Printf("- [%s] %s (%s)\n", ev.Status, ev.Title, id)
		if verbose {
			fmt.Printf("  %s\n", ev.URL)
			if !ev.StartsAt.IsZero() {
				fmt.Printf("  Starts: %s\n", ev.StartsAt.Format("2006-01-02 15:04"))
			}
			if len(ev.Materials) > 0 {
				fmt.Printf("  Materials: %d\n", len(ev.Materials))
			}
		}
	}

	return nil
}

func runEventsApprove(cmd *cobra.Command, args []string) error {
	return setEventStatus(args[0], models.StatusApproved)
}

func runEventsReject(cmd *cobra.Command, args []string) error {
	return setEventStatus(args[0], models.StatusRejected)
}

func setEventStatus(id string, status models.EventStatus) error {
	ctx := context.Background()

	rec, err := dbClient.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	fmt.Printf("%s: %s\n", status, rec.Title)
	return nil
}
