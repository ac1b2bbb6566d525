package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// askCmd sends one message to the VanMitra assistant. Works for
// guests too; a signed-in session gets role-aware answers.
var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask the VanMitra assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		var userID int64
		var role model.Role
		if user := env.sessions.User(); user != nil {
			userID, role = user.ID, user.Role
		}

		reply, err := env.chatbot.Send(cmd.Context(), strings.Join(args, " "), role, userID)
		if err != nil {
			return err
		}

		fmt.Println(reply.Message)
		for _, c := range reply.Data {
			switch reply.Type {
			case model.ChatOrderList, model.ChatOrderInfo:
				fmt.Printf("  - Order #%d  ₹%.0f  %s\n", c.ID, c.TotalAmount, c.Status)
			default:
				fmt.Printf("  - %s  ₹%.0f  %s\n", c.Name, c.Price, c.Category)
			}
		}
		if len(reply.Suggestions) > 0 {
			fmt.Printf("try: %s\n", strings.Join(reply.Suggestions, " | "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
