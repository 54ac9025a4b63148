package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"emojiusage/pkg/auth"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Slack tokens",
	Long: `Manage stored Slack tokens securely.

Tokens are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variable (SLACK_TOKEN, read-only fallback)

Never share your token or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [workspace]",
	Short: "Store a Slack token securely",
	Long: `Store a Slack user token in the system keychain or an encrypted file.

The token must carry the search:read scope; bot tokens cannot call
the search API. The workspace name is just a label so multiple
tokens can be stored side by side.`,
	Example: `  # Interactive login
  emojiusage auth login

  # Login with a workspace label
  emojiusage auth login acme`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout [workspace]",
	Short: "Remove a stored token",
	Example: `  # Remove the default token
  emojiusage auth logout

  # Remove a specific workspace's token
  emojiusage auth logout acme`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogout,
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored tokens",
	Long:  `Show all stored tokens with their values masked.`,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize token storage:", err)
		os.Exit(1)
	}

	workspace := auth.DefaultWorkspace
	if len(args) > 0 {
		workspace = args[0]
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println(auth.TokenInstructions)
	fmt.Println()

	if existing, _ := manager.Retrieve(workspace); existing != nil {
		fmt.Printf("A token for %q already exists (%s). Replace it? (y/N): ",
			workspace, auth.Mask(existing.Value))
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	fmt.Print("Slack token (hidden as you type): ")
	value, err := readPassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, "\nFailed to read token:", err)
		os.Exit(1)
	}
	fmt.Println()

	token := &auth.Token{Workspace: workspace, Value: strings.TrimSpace(value)}
	if err := manager.Store(token); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to store token:", err)
		if err == auth.ErrInvalidToken {
			fmt.Fprintln(os.Stderr, "The token should start with xoxp- (user token).")
		}
		os.Exit(1)
	}

	fmt.Printf("Token for %q stored securely.\n", workspace)
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize token storage:", err)
		os.Exit(1)
	}

	workspace := auth.DefaultWorkspace
	if len(args) > 0 {
		workspace = args[0]
	}

	if err := manager.Delete(workspace); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to remove token:", err)
		os.Exit(1)
	}

	fmt.Printf("Token for %q removed.\n", workspace)
}

func runStatus(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize token storage:", err)
		os.Exit(1)
	}

	tokens, err := manager.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to list tokens:", err)
		os.Exit(1)
	}

	if os.Getenv("SLACK_TOKEN") != "" {
		fmt.Println("SLACK_TOKEN is set in the environment (takes precedence).")
	}

	if len(tokens) == 0 {
		fmt.Println("No stored tokens. Run 'emojiusage auth login' to add one.")
		return
	}

	for _, t := range tokens {
		fmt.Printf("  %-20s %s  (stored %s)\n",
			t.Workspace, auth.Mask(t.Value), t.LastModified.Format("2006-01-02"))
	}
}

// readPassword reads a line without echoing it
func readPassword() (string, error) {
	data, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
