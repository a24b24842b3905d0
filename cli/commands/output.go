package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/wopr-network/wopr-go/core"
	"github.com/wopr-network/wopr-go/wopr"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitGateway    = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func errNoAPIKey(ref string) error {
	return fmt.Errorf("no API key: pass --api-key, set %s, or run 'wopr keys set %s'", wopr.APIKeyEnvVar, ref)
}

// exitCode picks the process exit code for err.
func exitCode(err error) int {
	var ee *exitError
	var ce *core.Error
	switch {
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, core.ErrInvalidParams), errors.Is(err, core.ErrEncode),
		errors.Is(err, wopr.ErrAPIKeyRequired):
		return ExitValidation
	case errors.As(err, &ce):
		return ExitGateway
	case errors.Is(err, core.ErrNetwork):
		return ExitNetwork
	case errors.Is(err, core.ErrDecode), errors.Is(err, core.ErrNoBody):
		return ExitGateway
	default:
		// Flag and argument errors from cobra.
		return ExitValidation
	}
}

// fail reports err on stderr, as JSON when --json is set, and returns it
// wrapped with its exit code.
func (a *App) fail(err error) error {
	code := exitCode(err)

	if a.jsonOutput {
		a.printErrorJSON(err)
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		var ce *core.Error
		if errors.As(err, &ce) && ce.TopUpURL != nil {
			fmt.Fprintf(a.stderr, "  Top up at %s\n", *ce.TopUpURL)
		}
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	return exitWithCode(code, err)
}

func (a *App) printErrorJSON(err error) {
	body := map[string]any{
		"type":    "error",
		"message": err.Error(),
	}

	var ce *core.Error
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ce):
		body["type"] = ce.Type
		body["code"] = ce.Code
		body["kind"] = ce.Kind.String()
		body["status"] = ce.StatusCode
		body["message"] = ce.Message
		if ce.Kind == core.KindInsufficientCredits {
			body["needs_credits"] = ce.NeedsCredits
			if ce.TopUpURL != nil {
				body["top_up_url"] = *ce.TopUpURL
			}
			if ce.CurrentBalanceCents != nil {
				body["current_balance_cents"] = *ce.CurrentBalanceCents
			}
			if ce.RequiredCents != nil {
				body["required_cents"] = *ce.RequiredCents
			}
		}
	case errors.As(err, &ve):
		body["type"] = "validation_error"
		body["field"] = ve.Field
		body["message"] = ve.Message
	case errors.Is(err, core.ErrNetwork):
		body["type"] = "network_error"
	case errors.Is(err, core.ErrEncode):
		body["type"] = "encode_error"
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]any{"error": body})
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
