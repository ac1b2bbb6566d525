package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// trackCmd looks up a shipment by its public tracking id.
var trackCmd = &cobra.Command{
	Use:   "track <tracking-id>",
	Short: "Track a shipment by tracking id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		delivery, degraded, err := env.delivery.Track(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if degraded {
			fmt.Println("warning: delivery service unreachable; showing placeholder data")
		}

		fmt.Printf("Tracking ID  %s\n", delivery.TrackingID)
		fmt.Printf("Status       %s\n", delivery.Status)
		fmt.Printf("From         %s (%s)\n", delivery.PickupAddress, delivery.PickupPincode)
		fmt.Printf("To           %s (%s)\n", delivery.DeliveryAddress, delivery.DeliveryPincode)
		if delivery.Agent != nil {
			fmt.Printf("Agent        %s (%s)\n", delivery.Agent.Name, delivery.Agent.Phone)
		}
		if !delivery.EstimatedDeliveryTime.IsZero() {
			fmt.Printf("ETA          %s\n", delivery.EstimatedDeliveryTime.Format("Jan 02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
