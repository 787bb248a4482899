// Package main is the entry point for the wordify conversion server.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/012arish/Wordify/server"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd runs the HTTP conversion server.
var rootCmd = &cobra.Command{
	Use:   "wordify",
	Short: "PDF to Word conversion server",
	Long: `wordify serves a single conversion endpoint that turns an uploaded PDF
into a Word document: each page is rasterized, large dark rectangular
overlays are optionally erased, and the page images are embedded into a
paginated DOCX.

Routes:
  GET  /health    liveness check
  POST /convert   multipart upload (file, optional dpi and fix_overlay)`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle via maxUploadBytes, which reads rootCmd.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := logrus.New()
		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", viper.GetString("log-level"), err)
		}
		log.SetLevel(level)

		srv := server.New(server.Config{
			Addr:           listenAddr(),
			MaxUploadBytes: maxUploadBytes(),
			TempDir:        viper.GetString("tmp-dir"),
		}, log)
		return srv.ListenAndServe()
	}

	rootCmd.Flags().String("addr", "", "listen address (default :5000)")
	rootCmd.Flags().Int64("max-upload", server.DefaultMaxUploadBytes, "maximum upload size in bytes")
	rootCmd.Flags().String("tmp-dir", "", "base directory for per-request workspaces (default system temp)")
	rootCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	for _, name := range []string{"addr", "max-upload", "tmp-dir", "log-level"} {
		if err := viper.BindPFlag(name, rootCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	viper.SetConfigName("wordify")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("WORDIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file is optional.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// listenAddr resolves the listen address, honoring the PORT environment
// variable common on container platforms when no address was given
// explicitly.
func listenAddr() string {
	if addr := viper.GetString("addr"); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ""
}

// maxUploadBytes resolves the upload cap, honoring the legacy
// MAX_CONTENT_LENGTH environment variable when nothing else was given.
func maxUploadBytes() int64 {
	if rootCmd.Flags().Changed("max-upload") || viper.InConfig("max-upload") {
		return viper.GetInt64("max-upload")
	}
	if raw := os.Getenv("MAX_CONTENT_LENGTH"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return viper.GetInt64("max-upload")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
