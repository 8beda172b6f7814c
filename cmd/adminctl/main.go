package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/clientsession"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/handlers"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/services"
	pkgauth "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/auth"
	"github.com/spf13/cobra"
)

var (
	apiBase     string
	sessionFile string

	httpClient = &http.Client{Timeout: 10 * time.Second}
)

func main() {
	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Admin client for the Funny Yellow sticker catalog",
		Long: `adminctl manages an admin session against the catalog API:
log in, inspect the session, pull catalog stats, and log out.

The session token is cached on disk and reused until it expires.`,
		SilenceUsage: true,
	}

	defaultSession := filepath.Join(homeDir(), ".funny-yellow", "session.json")
	root.PersistentFlags().StringVar(&apiBase, "api", "http://localhost:8080", "base URL of the catalog API")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", defaultSession, "path of the cached session file")

	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(hashCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func openSession() (*clientsession.Session, error) {
	store, err := clientsession.NewFileStore(sessionFile)
	if err != nil {
		return nil, err
	}
	return clientsession.New(store), nil
}

func loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and cache a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}

			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")

			body, err := json.Marshal(map[string]string{
				"username": username,
				"password": password,
			})
			if err != nil {
				return err
			}

			resp, err := httpClient.Post(apiBase+"/api/admin/login", "application/json", bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("login request failed: %w", err)
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
			case http.StatusUnauthorized:
				return fmt.Errorf("invalid username or password")
			case http.StatusTooManyRequests:
				return fmt.Errorf("too many login attempts; try again later")
			default:
				return fmt.Errorf("login failed with status %d", resp.StatusCode)
			}

			var auth services.AuthResponse
			if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
				return fmt.Errorf("failed to decode login response: %w", err)
			}

			session, err := openSession()
			if err != nil {
				return err
			}
			if err := session.Establish(auth.Token); err != nil {
				return fmt.Errorf("failed to cache session: %w", err)
			}

			if expiresAt, ok := session.ExpiresAt(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (session valid until %s)\n",
					username, expiresAt.Local().Format(time.RFC1123))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (prompted if omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}

			// Best effort: tell the server so the cookie variant is
			// cleared too. The local cache is cleared regardless.
			if token, ok := session.Current(); ok {
				req, err := http.NewRequest(http.MethodPost, apiBase+"/api/admin/logout", nil)
				if err == nil {
					req.Header.Set("Authorization", "Bearer "+token)
					if resp, err := httpClient.Do(req); err == nil {
						resp.Body.Close()
					}
				}
			}

			if err := session.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cached session and verify it against the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}

			token, ok := session.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			var remote handlers.SessionResponse
			if err := getJSON("/api/admin/session", token, &remote); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cached session exists but the server rejected it: %v\n", err)
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'adminctl login' to start a new session.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", remote.Username)
			if expiresAt, ok := session.ExpiresAt(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Session valid until %s\n", expiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}

			token, ok := session.Current()
			if !ok {
				return fmt.Errorf("not logged in; run 'adminctl login' first")
			}

			var stats models.CatalogStats
			if err := getJSON("/api/admin/stats", token, &stats); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stickers:  %d\n", stats.TotalStickers)
			fmt.Fprintf(cmd.OutOrStdout(), "Packs:     %d\n", stats.TotalPacks)
			fmt.Fprintf(cmd.OutOrStdout(), "Downloads: %d\n", stats.TotalDownloads)
			return nil
		},
	}
}

// hashCmd generates the ADMIN_PASSWORD_HASH / ADMIN_PASSWORD_SALT pair
// for the server environment.
func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Generate password hash and salt for server configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			hash, salt, err := pkgauth.HashPasswordWithNewSalt(password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_PASSWORD_HASH=%s\n", hash)
			fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_PASSWORD_SALT=%s\n", salt)
			return nil
		},
	}
}

func getJSON(path, token string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("session rejected (expired or revoked)")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
