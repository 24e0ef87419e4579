package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/molpadia/molparelay/internal/config"
	"github.com/molpadia/molparelay/internal/infrastructure/extractor"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagConfig       string
	flagAddr         string
	flagCert         string
	flagKey          string
	flagInstallYtDlp bool
)

var rootCmd = &cobra.Command{
	Use:          "molparelay",
	Short:        "Relay YouTube videos to S3 storage over HTTP",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path of TOML config file")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "web server address")
	rootCmd.Flags().StringVar(&flagCert, "cert", "", "path of TLS certificate file")
	rootCmd.Flags().StringVar(&flagKey, "key", "", "path of TLS private key file")
	rootCmd.Flags().BoolVar(&flagInstallYtDlp, "install-ytdlp", false, "install yt-dlp before serving")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	// CLI flags override config file and environment values.
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagCert != "" {
		cfg.CertFile = flagCert
	}
	if flagKey != "" {
		cfg.KeyFile = flagKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if flagInstallYtDlp {
		if err := extractor.Install(ctx); err != nil {
			return err
		}
	}
	r, err := newRouter(ctx, cfg)
	if err != nil {
		return err
	}
	srv := newServer(cfg, r)

	errc := make(chan error, 1)
	go func() {
		log.Printf("the server started on port: %s\n", cfg.Addr)
		if cfg.CertFile != "" && cfg.KeyFile != "" {
			errc <- srv.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			errc <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Printf("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
