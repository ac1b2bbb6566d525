// Package cmd wires the vanvyapaar command line. The bare command
// launches the terminal UI; subcommands cover scripted use: login,
// logout, whoami, notifications, track, pincode, ask, config,
// version.
package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/app"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/credential"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/logging"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notify"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/session"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/store"
)

var configPath string

// appEnv holds the wired stores and services shared by every command.
type appEnv struct {
	cfg      *model.AppConfig
	client   *api.Client
	bus      *notice.Bus
	sessions *session.Store
	cache    *store.CacheStore
	notifs   *notify.Store

	auth     *service.Auth
	notifSvc *service.Notifications
	seller   *service.Seller
	buyer    *service.Buyer
	delivery *service.Delivery
	admin    *service.Admin
	chatbot  *service.Chatbot
}

// newAppEnv loads configuration and wires the client, stores, and
// services. The persisted session, if any, is rehydrated.
func newAppEnv() (*appEnv, error) {
	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	env := &appEnv{cfg: cfg, bus: notice.NewBus()}

	env.client = api.NewClient(cfg.BaseURL, func() string {
		if env.sessions == nil {
			return ""
		}
		return env.sessions.Token()
	}, api.Hooks{})

	env.auth = service.NewAuth(env.client)
	env.sessions = session.NewStore(env.auth, credential.System(), env.bus,
		session.WithValidator(func(ctx context.Context, _ string) error {
			// Probe the cheapest authenticated endpoint. Only an
			// explicit token rejection invalidates the session;
			// transport failures keep the rehydrated session.
			user := env.sessions.User()
			if user == nil {
				return nil
			}
			_, err := env.notifSvc.UnreadCount(ctx, user.ID, user.Role)
			if api.IsAuthError(err) {
				return err
			}
			return nil
		}))
	env.client.SetHooks(env.sessions.Hooks())

	cache, err := store.NewCacheStore(cfg.CachePath)
	if err != nil {
		logging.Warn("opening cache store; continuing without local cache", "err", err)
	} else {
		env.cache = cache
	}

	env.notifSvc = service.NewNotifications(env.client)
	opts := []notify.Option{
		notify.WithPollInterval(time.Duration(cfg.PollIntervalSec) * time.Second),
	}
	if env.cache != nil {
		opts = append(opts, notify.WithCache(env.cache))
	}
	env.notifs = notify.NewStore(env.notifSvc, env.bus, opts...)

	env.seller = service.NewSeller(env.client)
	env.buyer = service.NewBuyer(env.client, env.cache)
	env.delivery = service.NewDelivery(env.client, cfg.Delivery.AllowFallback)
	env.admin = service.NewAdmin(env.client)
	env.chatbot = service.NewChatbot(env.client)

	env.sessions.InitializeAuth()
	return env, nil
}

// close releases the environment's resources.
func (e *appEnv) close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
	_ = logging.Shutdown()
}

// flushNotices prints any pending notices to the terminal.
func (e *appEnv) flushNotices() {
	for {
		n, ok := e.bus.TryNext()
		if !ok {
			return
		}
		fmt.Println(n.Message)
	}
}

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "vanvyapaar",
	Short: "Terminal client for the VanVyapaar artisan marketplace",
	Long: `Terminal client for the VanVyapaar artisan marketplace.

Run without arguments to open the interactive UI. Subcommands cover
scripted use from shells and cron jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.close()

		m := app.New(app.Deps{
			Sessions:      env.sessions,
			Notifications: env.notifs,
			Notices:       env.bus,
			Seller:        env.seller,
			Buyer:         env.buyer,
			Delivery:      env.delivery,
			Admin:         env.admin,
			Chat:          env.chatbot,
		})

		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/.config/vanvyapaar/config.yaml)")
}
