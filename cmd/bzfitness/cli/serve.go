package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/retshidi-radebe/bzfitness/internal/handler"
	"github.com/retshidi-radebe/bzfitness/internal/notify"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/server"
	"github.com/retshidi-radebe/bzfitness/internal/service"
)

const banner = `
 ___ _____   ___ _ _
| _ )_  / | | __(_) |_ _ _  ___ ______
| _ \/ /  | | _|| |  _| ' \/ -_|_-<_-<
|___/___|   |_| |_|\__|_||_\___/__/__/
`

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the BZ Fitness API server",
		Long:  "Start the HTTP server for the public site endpoints, the admin API and the admin pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (debug logging)")

	vcfg.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	vcfg.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(cmd *cobra.Command, dev bool) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logLevel := settings.Log.SlogLevel()
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := newLogger(logLevel)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, banner)
	fmt.Fprintln(out)

	if settings.Auth.UsingFallbackSecret() {
		logger.Warn("auth.session_secret is not set; sessions are signed with a built-in development secret")
	}
	if settings.Auth.AdminPasswordHash == "" {
		logger.Warn("no environment superadmin configured - set ADMIN_PASSWORD_HASH or run: bzfitness admin create")
	}

	st, err := openStore(settings)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "driver", st.DialectName(), "timezone", settings.Gym.Timezone)

	authSvc := service.NewAuthService(st, settings.Auth)

	sender, to := notify.New(settings.Notify, logger)
	if !settings.Notify.Enabled() {
		logger.Info("contact notifications disabled - set notify.resend_api_key, notify.from and notify.to")
	}

	gym := handler.NewGymHandler(st, handler.GymOptions{
		Location:  settings.Gym.Location,
		Logger:    logger,
		Validator: openapi.NewValidator(),
		Notifier:  sender,
		NotifyTo:  to,
	})

	srvCfg := server.ConfigFrom(settings, versionString())
	srv, err := server.New(srvCfg, st, authSvc, gym, logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	scheme := "http"
	if settings.Server.TLS.Enabled() {
		scheme = "https"
	}
	base := fmt.Sprintf("%s://%s:%d", scheme, srvCfg.Host, srvCfg.Port)
	fmt.Fprintf(out, "→ BZ Fitness %s\n", versionString())
	fmt.Fprintf(out, "→ Listening on %s\n", base)
	fmt.Fprintf(out, "→ Admin UI:   %s/admin\n", base)
	fmt.Fprintf(out, "→ OpenAPI:    %s/openapi.json\n", base)
	fmt.Fprintf(out, "→ Health:     %s/healthz\n", base)
	fmt.Fprintf(out, "→ Database:   %s\n", st.DialectName())
	fmt.Fprintln(out)

	return srv.ListenAndServe()
}
