package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexttoyou/nexttoyou/internal/deals/application/queries"
	"github.com/nexttoyou/nexttoyou/internal/geo"
)

var (
	dealsLat    float64
	dealsLon    float64
	dealsItems  []string
	dealsRadius float64
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Find deals near a location",
}

var dealsFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Search nearby stores for shopping list items",
	Example: `  nexttoyou deals find --lat 32.0853 --lon 34.7818 --item milk --item bread
  nexttoyou deals find --lat 32.0853 --lon 34.7818 --item "claw hammer" --radius 2000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		container, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer container.Close()

		radius := dealsRadius
		if radius <= 0 {
			radius = container.Config.DefaultSearchRadiusMeters
		}

		results, err := container.FindDealsHandler.Handle(ctx, queries.FindDealsQuery{
			Origin:       geo.NewCoordinate(dealsLat, dealsLon),
			Items:        dealsItems,
			RadiusMeters: radius,
		})
		if err != nil {
			return fmt.Errorf("search deals: %w", err)
		}

		if len(results) == 0 {
			cmd.Println("No stores with matching items in range.")
			return nil
		}

		for i, deal := range results {
			cmd.Printf("%d. %s (%s, %dm away)\n", i+1, deal.StoreName, deal.Category, deal.DistanceMeters)
			for _, item := range deal.Items {
				cmd.Printf("   %-28s ₪%.2f  (for %q, confidence %.2f)\n",
					item.Entry.Name, item.Entry.Price, item.Query, item.Confidence)
			}
		}
		return nil
	},
}

func init() {
	dealsFindCmd.Flags().Float64Var(&dealsLat, "lat", 0, "latitude of the search origin")
	dealsFindCmd.Flags().Float64Var(&dealsLon, "lon", 0, "longitude of the search origin")
	dealsFindCmd.Flags().StringArrayVar(&dealsItems, "item", nil, "shopping list item (repeatable)")
	dealsFindCmd.Flags().Float64Var(&dealsRadius, "radius", 0, "search radius in meters (default from config)")
	_ = dealsFindCmd.MarkFlagRequired("lat")
	_ = dealsFindCmd.MarkFlagRequired("lon")
	_ = dealsFindCmd.MarkFlagRequired("item")

	dealsCmd.AddCommand(dealsFindCmd)
	rootCmd.AddCommand(dealsCmd)
}
