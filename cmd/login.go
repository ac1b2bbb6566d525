package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

var (
	loginEmail    string
	loginPassword string
	loginRole     string
)

// loginCmd establishes a session and persists it to the keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		role := model.Role(strings.ToUpper(loginRole))
		switch role {
		case model.RoleBuyer, model.RoleSeller, model.RoleAgent, model.RoleAdmin:
		default:
			return fmt.Errorf("unknown role %q (expected buyer, seller, agent, or admin)", loginRole)
		}

		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		ok := env.sessions.Login(cmd.Context(), model.Credentials{
			Email:    loginEmail,
			Password: loginPassword,
			Role:     role,
		})
		env.flushNotices()
		if !ok {
			return fmt.Errorf("login failed")
		}
		return nil
	},
}

// logoutCmd drops the persisted session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		if env.cache != nil {
			_ = env.cache.Clear(context.Background())
		}
		env.sessions.Logout()
		env.flushNotices()
		return nil
	},
}

// whoamiCmd prints the signed-in identity.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the signed-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		user := env.sessions.User()
		if user == nil {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "login email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "login password")
	loginCmd.Flags().StringVar(&loginRole, "role", "buyer", "account role: buyer, seller, agent, admin")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
