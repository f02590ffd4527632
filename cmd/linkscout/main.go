// Command linkscout runs the LinkedIn automation MCP server over stdio.
// Stdout carries the protocol; all logging goes to the log file (or
// stderr as a fallback).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/talentloop/linkscout/pkg/browser"
	"github.com/talentloop/linkscout/pkg/config"
	"github.com/talentloop/linkscout/pkg/linkedin"
	"github.com/talentloop/linkscout/pkg/logging"
	"github.com/talentloop/linkscout/pkg/mcptools"
)

const version = "0.1.0"

var (
	configPath string
	envFile    string
	headed     bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkscout",
		Short: "LinkedIn automation MCP server",
		Long: "linkscout drives a headless browser through LinkedIn login, status checks,\n" +
			"post scraping, and connection requests, exposed as MCP tools over stdio.",
		Version:      version,
		SilenceUsage: true,
		RunE:         runServer,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (default ~/.linkscout/config.yaml)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file supplying LINKEDIN_EMAIL and LINKEDIN_PASSWORD")
	cmd.Flags().BoolVar(&headed, "headed", false, "run the browser with a visible window")

	return cmd
}

func runServer(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	log, _ := logging.NewLogger("main")
	defer log.Close()

	if err := config.Initialize(configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	browserCfg := config.GetBrowser()
	linkedinCfg := config.GetLinkedIn()
	if headed {
		browserCfg.SetHeadless(false)
	}

	launcher := browser.NewPlaywrightLauncher(browser.SessionOptions{
		Headless: browserCfg.Headless,
		Viewport: &browser.Viewport{
			Width:  browserCfg.ViewportWidth,
			Height: browserCfg.ViewportHeight,
		},
		SlowMo:  browserCfg.SlowMoMs,
		Timeout: browserCfg.OperationTimeoutMs,
	})
	manager := browser.NewSessionManager(launcher)

	// Release runs on every exit path so no browser process outlives us.
	defer func() {
		if err := manager.Release(); err != nil {
			log.Errorf("Browser release failed: %v", err)
		}
	}()

	flows := linkedin.NewFlows(manager, linkedinCfg, browserCfg)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "linkscout",
		Version: version,
	}, nil)
	mcptools.RegisterAll(server, flows)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Infof("Received %s, shutting down", sig)
		cancel()
	}()

	log.Infof("Starting linkscout v%s on stdio", version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped: %w", err)
	}

	log.Infof("Server stopped")
	return nil
}
