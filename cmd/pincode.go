package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pincodeExpress bool

// pincodeCmd checks whether a pincode is deliverable and quotes the fee.
var pincodeCmd = &cobra.Command{
	Use:   "pincode <pincode>",
	Short: "Check delivery serviceability and charge for a pincode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		pincode := args[0]
		serviceable, err := env.delivery.CheckServiceability(cmd.Context(), pincode)
		if err != nil {
			return err
		}
		if !serviceable {
			fmt.Printf("%s: not serviceable\n", pincode)
			return nil
		}

		deliveryType := "STANDARD"
		if pincodeExpress {
			deliveryType = "EXPRESS"
		}
		charge, err := env.delivery.Charge(cmd.Context(), pincode, deliveryType)
		if err != nil {
			return err
		}
		fmt.Printf("%s: serviceable, %s delivery ₹%.0f\n", pincode, deliveryType, charge)
		return nil
	},
}

func init() {
	pincodeCmd.Flags().BoolVar(&pincodeExpress, "express", false, "quote express delivery instead of standard")
	rootCmd.AddCommand(pincodeCmd)
}
