/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/clog"
	"github.com/wedsite/wedsite/pkg/config"
	"github.com/wedsite/wedsite/pkg/site"
	"github.com/wedsite/wedsite/pkg/webapi"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
)

const shutdownTimeout = 10 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wedsited",
	Short: "Run the wedding website",
	Long: `Serves the public wedding site, the admin pages and the same-origin
API routes that forward to the backend API.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Unable to load configuration: %s", err)
		}

		if err := Run(cmd.Context(), c); err != nil {
			log.Fatalf("wedsited: %s", err)
		}
	},
}

// loadConfig loads the optional dotenv file into the environment, then
// layers command line flags over it.
func loadConfig(cmd *cobra.Command) (config.Configer, error) {
	dotenvPath, _ := cmd.Flags().GetString("dotenv")
	if dotenvPath == "" {
		dotenvPath = os.Getenv(config.DotenvPathKey)
	}

	if err := config.NewDotenvConfig(dotenvPath).Load(); err != nil {
		return nil, err
	}

	c := config.NewViperConfig()
	bindings := map[string]string{
		"port":        config.PortKey,
		"backend-url": config.BackendURLKey,
		"log-level":   config.LogLevelKey,
		"static-dir":  config.StaticDirKey,
	}

	for flag, key := range bindings {
		if err := c.BindFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func Run(ctx context.Context, c config.Configer) error {
	settings, err := config.LoadSettings(c)
	if err != nil {
		return err
	}

	if err := clog.Setup(os.Stdout, settings.LogLevel); err != nil {
		log.Warnf("Invalid %s %q, using info: %s", config.LogLevelKey, settings.LogLevel, err)
		log.SetLevel(log.InfoLevel)
	}

	log.Infof("Backend URL: %s", settings.BackendURL)
	log.Infof("Static dir: %s", settings.StaticDir)

	client := backend.NewClient(backend.Options{
		BaseURL:    settings.BackendURL,
		Timeout:    settings.BackendTimeout,
		RetryCount: settings.BackendRetryCount,
	})

	assets, err := site.IndexAssets(ctx, settings.StaticDir)
	if err != nil {
		return err
	}

	renderer, err := site.NewRenderer()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = webapi.HTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: requestID}))
	e.Use(apimiddleware.RequestLogger())

	setupRoutes(e, RouteOpts{
		client:   client,
		settings: settings,
		gallery:  site.NewGallery(assets),
	})

	go func() {
		if err := e.Start(":" + settings.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Unable to start server: %v", err)
		}
	}()

	log.Infof("Listening on port %s", settings.Port)
	waitForSignal(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func waitForSignal(ctx context.Context) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.Infof("Got %s signal, shutting down...", sig)
	case <-ctx.Done():
	}
}

func requestID() string {
	id, err := uuid.GenerateUUID()
	if err != nil {
		log.Errorf("Unable to generate request id: %s", err)
		return ""
	}

	return id
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().String("dotenv", "", "dotenv file to load before reading the environment")
	rootCmd.Flags().StringP("port", "p", config.DefaultPort, "port to listen on")
	rootCmd.Flags().String("backend-url", "", "backend API base URL (default "+config.DefaultBackendURL+")")
	rootCmd.Flags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.Flags().String("static-dir", config.DefaultStaticDir, "directory holding images, gallery media and css")
}
