package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	dealQueries "github.com/nexttoyou/nexttoyou/internal/deals/application/queries"
	"github.com/nexttoyou/nexttoyou/internal/geo"
	reminderQueries "github.com/nexttoyou/nexttoyou/internal/reminders/application/queries"
	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

var (
	remindersUser string
	remindersAt   string
	remindersLat  float64
	remindersLon  float64
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Evaluate task reminders",
}

var remindersDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List time reminders due now (or at a given instant)",
	Example: `  nexttoyou reminders due --user 7a1d2f30-0001-4a7e-9b1c-0d9e51c00001
  nexttoyou reminders due --user 7a1d2f30-0001-4a7e-9b1c-0d9e51c00001 --at 2026-09-01T09:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		userID, err := uuid.Parse(remindersUser)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}

		now := time.Now()
		if remindersAt != "" {
			now, err = time.Parse(time.RFC3339, remindersAt)
			if err != nil {
				return fmt.Errorf("invalid --at instant, want RFC3339: %w", err)
			}
		}

		container, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer container.Close()

		events, err := container.DueTimeRemindersHandler.Handle(ctx, reminderQueries.DueTimeRemindersQuery{
			UserID: userID,
			Now:    now,
		})
		if err != nil {
			return fmt.Errorf("evaluate time reminders: %w", err)
		}

		if len(events) == 0 {
			cmd.Println("No reminders due.")
			return nil
		}
		for _, e := range events {
			cmd.Printf("- %s (task %s)\n", e.Title, e.TaskID)
		}
		return nil
	},
}

var remindersEvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Feed a location update through the geofence tracker",
	Example: `  nexttoyou reminders evaluate --user 7a1d2f30-0001-4a7e-9b1c-0d9e51c00001 --lat 32.0900 --lon 34.7900`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		userID, err := uuid.Parse(remindersUser)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}

		container, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer container.Close()

		position := geo.NewCoordinate(remindersLat, remindersLon)
		events, err := container.GeofenceTracker.Evaluate(ctx, userID, position)
		if err != nil && !errors.Is(err, domain.ErrStatePersist) {
			return fmt.Errorf("evaluate geofences: %w", err)
		}
		if errors.Is(err, domain.ErrStatePersist) {
			cmd.PrintErrln("warning: geofence state could not be saved, events below are not deduplicated")
		}

		for _, e := range events {
			cmd.Printf("- left %s: %s (%dm away)\n", e.LocationLabel, e.Title, e.DistanceMeters)
		}

		// A location update also drives the proximity deal check.
		deals, err := container.CheckProximityHandler.Handle(ctx, dealQueries.CheckProximityQuery{
			UserID:   userID,
			Position: position,
		})
		if err != nil {
			return fmt.Errorf("check proximity deals: %w", err)
		}
		for _, deal := range deals {
			cmd.Printf("- %s has %d item(s) from your list, %dm away\n",
				deal.StoreName, len(deal.Items), deal.DistanceMeters)
		}

		if len(events) == 0 && len(deals) == 0 {
			cmd.Println("Nothing to report.")
		}
		return nil
	},
}

func init() {
	remindersDueCmd.Flags().StringVar(&remindersUser, "user", "", "user id")
	remindersDueCmd.Flags().StringVar(&remindersAt, "at", "", "RFC3339 instant to evaluate at (default now)")
	_ = remindersDueCmd.MarkFlagRequired("user")

	remindersEvaluateCmd.Flags().StringVar(&remindersUser, "user", "", "user id")
	remindersEvaluateCmd.Flags().Float64Var(&remindersLat, "lat", 0, "latitude of the location update")
	remindersEvaluateCmd.Flags().Float64Var(&remindersLon, "lon", 0, "longitude of the location update")
	_ = remindersEvaluateCmd.MarkFlagRequired("user")
	_ = remindersEvaluateCmd.MarkFlagRequired("lat")
	_ = remindersEvaluateCmd.MarkFlagRequired("lon")

	remindersCmd.AddCommand(remindersDueCmd)
	remindersCmd.AddCommand(remindersEvaluateCmd)
	rootCmd.AddCommand(remindersCmd)
}
