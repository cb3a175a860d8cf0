// Package main contains the environ CLI commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Tanmay1202/EnviRon/pkg/client"
)

const (
	envServerURL = "ENVIRON_API_URL"
	envToken     = "ENVIRON_SESSION_TOKEN"
	envUserID    = "ENVIRON_USER_ID"
)

var (
	serverURL string
	token     string
	userID    string

	rootCmd = &cobra.Command{
		Use:   "environ",
		Short: "Classify waste photos and track your recycling progress",
		Long: `environ is the command-line client for the EnviRon service.

Point it at a photo of a waste item to find out how to dispose of it,
where to take it, and to earn points and badges for recycling.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (default: $ENVIRON_API_URL or http://localhost:8080/api)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "session bearer token (default: $ENVIRON_SESSION_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user identifier (default: $ENVIRON_USER_ID)")

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(progressCmd())
}

func main() {
	godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// apiClient resolves flag and environment configuration into a Client.
func apiClient() *client.Client {
	url := serverURL
	if url == "" {
		url = os.Getenv(envServerURL)
	}
	if url == "" {
		url = "http://localhost:8080/api"
	}

	session := token
	if session == "" {
		session = os.Getenv(envToken)
	}

	return client.New(url, session)
}

func resolveUserID() (string, error) {
	if userID != "" {
		return userID, nil
	}
	if v := os.Getenv(envUserID); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("user id required: pass --user or set %s", envUserID)
}
