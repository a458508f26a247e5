package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "1.0.0" // set during build with -ldflags

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gofast-server",
	Short: "gofast-server - an in-memory key/value server",
	Long: `gofast-server is a single-node, in-memory key/value server speaking
a RESP-compatible wire protocol.

Supported commands:
- PING, ECHO
- SET (with optional PX millisecond expiry), GET
- RPUSH, LPUSH, LRANGE, LLEN`,
	Version: version,
	RunE:    runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("Starting gofast-server v%s\n", version)
	fmt.Printf("Listening on %s:%d\n", config.Host, config.Port)
	fmt.Printf("Max Frame: %s\n", config.MaxFrame)
	fmt.Printf("Log Level: %s\n", config.LogLevel)
	fmt.Println(strings.Repeat("=", 51))

	server := NewServer(config)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-sigChan:
		fmt.Println("\nShutting down gofast-server...")
		if err := server.Stop(); err != nil {
			return fmt.Errorf("error during shutdown: %w", err)
		}
		fmt.Println("gofast-server stopped")
	}

	return nil
}

// configCmd shows the resolved configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := LoadConfig()
		if err != nil {
			return err
		}
		fmt.Println("gofast-server configuration:")
		fmt.Println(strings.Repeat("=", 31))
		fmt.Printf("Host: %s\n", config.Host)
		fmt.Printf("Port: %d\n", config.Port)
		fmt.Printf("Max Clients: %d\n", config.MaxClients)
		fmt.Printf("Max Frame: %s\n", config.MaxFrame)
		fmt.Printf("Timeout: %v\n", config.Timeout)
		fmt.Printf("Log Level: %s\n", config.LogLevel)
		fmt.Printf("TCP Keep-Alive: %t\n", config.TCPKeepAlive)
		fmt.Printf("Read Timeout: %v\n", config.ReadTimeout)
		fmt.Printf("Write Timeout: %v\n", config.WriteTimeout)
		return nil
	},
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gofast-server v%s\n", version)
		fmt.Printf("Built with Go %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("host", "H", "127.0.0.1", "Host to bind to")
	rootCmd.PersistentFlags().IntP("port", "p", 6379, "Port to listen on")
	rootCmd.PersistentFlags().Int("max-clients", 10000, "Maximum number of concurrent connections")
	rootCmd.PersistentFlags().String("max-frame", "512MB", "Maximum size of a single frame (e.g. 64MB, 1GB)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Client idle timeout (shown by 'config'; not applied to connections)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal); validated, does not filter log output")
	rootCmd.PersistentFlags().Bool("tcp-keepalive", true, "Enable TCP keep-alive")
	rootCmd.PersistentFlags().Duration("read-timeout", 30*time.Second, "Read timeout (shown by 'config'; not applied to connections)")
	rootCmd.PersistentFlags().Duration("write-timeout", 30*time.Second, "Write timeout (shown by 'config'; not applied to connections)")

	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("max_clients", rootCmd.PersistentFlags().Lookup("max-clients"))
	viper.BindPFlag("max_frame", rootCmd.PersistentFlags().Lookup("max-frame"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("tcp_keepalive", rootCmd.PersistentFlags().Lookup("tcp-keepalive"))
	viper.BindPFlag("read_timeout", rootCmd.PersistentFlags().Lookup("read-timeout"))
	viper.BindPFlag("write_timeout", rootCmd.PersistentFlags().Lookup("write-timeout"))

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute is the main entry point for the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
