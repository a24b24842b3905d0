package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wopr-network/wopr-go/cli/keystore"
)

func (a *App) newKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
		Long:  `Manage gateway API keys. Keys are stored encrypted in ~/.wopr/keys.enc.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [name]",
		Short: "Store an API key",
		Long: `Store an API key under name (default: the config's api_key_ref, or "wopr").
The key is prompted without echo when stdin is a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.KeyRef()
			if len(args) == 1 {
				name = args[0]
			}
			return a.runKeysSet(name)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored API keys",
		Long:  `List stored key names. Key values are never shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKeysList()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKeysDelete(args[0])
		},
	})

	return cmd
}

func (a *App) runKeysSet(name string) error {
	fmt.Fprintf(a.stderr, "Enter API key for %s: ", name)

	apiKey, err := a.readSecret()
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to read key: %w", err)))
	}
	if apiKey == "" {
		return a.fail(exitWithCode(ExitValidation, errors.New("API key cannot be empty")))
	}

	ks, err := a.newKeystore()
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err)))
	}
	if err := ks.Set(name, apiKey); err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to store key: %w", err)))
	}

	fmt.Fprintf(a.stdout, "API key %s stored.\n", name)
	return nil
}

// readSecret reads one line from stdin, without echo when stdin is a terminal.
func (a *App) readSecret() (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr) // Newline after hidden input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	// Piped input
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) runKeysList() error {
	ks, err := a.newKeystore()
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err)))
	}

	names, err := ks.List()
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to list keys: %w", err)))
	}

	if a.jsonOutput {
		return a.printJSON(map[string][]string{"keys": names})
	}
	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}
	fmt.Fprintln(a.stdout, "Stored keys:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  - %s\n", name)
	}
	return nil
}

func (a *App) runKeysDelete(name string) error {
	ks, err := a.newKeystore()
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err)))
	}

	if err := ks.Delete(name); err != nil {
		var nf *keystore.ErrKeyNotFound
		if errors.As(err, &nf) {
			return a.fail(exitWithCode(ExitValidation, fmt.Errorf("no key stored as %s", name)))
		}
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("failed to delete key: %w", err)))
	}

	fmt.Fprintf(a.stdout, "API key %s deleted.\n", name)
	return nil
}
