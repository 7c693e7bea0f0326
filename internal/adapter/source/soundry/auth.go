package soundry

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/soundry/reel/internal/domain"
)

// AuthResult carries the credentials gathered by the setup flow
type AuthResult struct {
	Token    string
	UserID   string
	Username string
}

// AuthFlow gathers and validates a Soundry API token interactively
type AuthFlow struct {
	logger *slog.Logger
}

// NewAuthFlow creates a new Soundry authentication flow
func NewAuthFlow(logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{logger: logger}
}

// Run executes the token entry flow: the token is read with terminal
// echo disabled, then validated against the server, and the account's
// user id and username are resolved from the API.
func (f *AuthFlow) Run(ctx context.Context, serverURL string) (*AuthResult, error) {
	serverURL = strings.TrimRight(serverURL, "/")

	fmt.Println()
	fmt.Println("Soundry Authentication")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("Create an API token under Account → API Access, then paste it here.")

	fmt.Print("API token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	fmt.Println() // Add newline after hidden input

	if token == "" {
		return nil, domain.ErrAuthFailed
	}

	fmt.Println()
	fmt.Println("Validating token...")

	client := NewClient(serverURL, token, "", f.logger)
	userID, username, err := client.WhoAmI(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Authenticated as %s\n", username)

	return &AuthResult{
		Token:    token,
		UserID:   userID,
		Username: username,
	}, nil
}

// PromptForServerURL prompts the user to enter the Soundry server URL
func PromptForServerURL() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter the Soundry server URL (e.g., https://api.soundry.app): ")
	url, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(url), nil
}
