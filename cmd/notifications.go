package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/gate"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

var (
	notifUnreadOnly  bool
	notifCountOnly   bool
	notifMarkAllRead bool
	notifMarkRead    int64
	notifDelete      int64
)

// notificationsCmd lists the signed-in user's notifications.
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "List notifications for the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		if gate.Authenticated().Evaluate(env.sessions.Snapshot()) != gate.Allow {
			return fmt.Errorf("not signed in; run `vanvyapaar login` first")
		}
		user := env.sessions.User()

		ctx := cmd.Context()

		switch {
		case notifMarkAllRead:
			env.notifs.MarkAllAsRead(ctx, user.ID, user.Role)
			env.flushNotices()
			return nil
		case notifMarkRead > 0:
			if err := env.notifs.Fetch(ctx, user.ID, user.Role); err != nil {
				return err
			}
			env.notifs.MarkAsRead(ctx, notifMarkRead)
			env.flushNotices()
			return nil
		case notifDelete > 0:
			if err := env.notifs.Fetch(ctx, user.ID, user.Role); err != nil {
				return err
			}
			env.notifs.Delete(ctx, notifDelete)
			env.flushNotices()
			return nil
		case notifCountOnly:
			count, err := env.notifSvc.UnreadCount(ctx, user.ID, user.Role)
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		}

		var notifications []model.Notification
		if notifUnreadOnly {
			notifications, err = env.notifSvc.ListUnread(ctx, user.ID, user.Role)
			if err != nil {
				return err
			}
		} else {
			if err := env.notifs.Fetch(ctx, user.ID, user.Role); err != nil {
				return err
			}
			notifications = env.notifs.Notifications()
		}

		for _, n := range notifications {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s #%d [%s] %s: %s\n", marker, n.ID, n.Priority, n.Title, n.Message)
		}
		return nil
	},
}

func init() {
	notificationsCmd.Flags().BoolVar(&notifUnreadOnly, "unread", false, "show unread only")
	notificationsCmd.Flags().BoolVar(&notifCountOnly, "count", false, "print the unread count only")
	notificationsCmd.Flags().BoolVar(&notifMarkAllRead, "mark-all-read", false, "mark every notification read")
	notificationsCmd.Flags().Int64Var(&notifMarkRead, "read", 0, "mark one notification read by id")
	notificationsCmd.Flags().Int64Var(&notifDelete, "delete", 0, "delete one notification by id")

	rootCmd.AddCommand(notificationsCmd)
}
