package commands

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/wopr-network/wopr-go/wopr"
)

type chatOptions struct {
	prompt      string
	system      string
	model       string
	temperature float32
	maxTokens   int
	stream      bool
}

func (a *App) newChatCommand() *cobra.Command {
	var opts chatOptions

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat completion request",
		Long: `Send a chat completion request through the gateway.

Examples:
  wopr chat --model gpt-4o --prompt "Hello"
  wopr chat --prompt "Hello" --stream
  wopr chat --prompt "Hello" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "User message (required)")
	cmd.Flags().StringVar(&opts.system, "system", "", "System message")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model ID (default from config)")
	cmd.Flags().Float32Var(&opts.temperature, "temperature", 0, "Temperature (0 = use default)")
	cmd.Flags().IntVar(&opts.maxTokens, "max-tokens", 0, "Max tokens (0 = use default)")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "Enable streaming output")

	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func (a *App) runChat(ctx context.Context, opts chatOptions) error {
	model := opts.model
	if model == "" {
		model = a.defaultModel()
	}
	if model == "" {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("model required: use --model flag or set default_model in config")))
	}

	client, err := a.client()
	if err != nil {
		return a.fail(err)
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: opts.temperature,
		MaxTokens:   opts.maxTokens,
	}
	if opts.system != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.system,
		})
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: opts.prompt,
	})

	if opts.stream {
		return a.runStreamingChat(ctx, client.Chat.Completions, req)
	}

	resp, err := client.Chat.Completions.New(ctx, req)
	if err != nil {
		return a.fail(err)
	}

	if a.jsonOutput {
		return a.printJSON(resp)
	}
	if len(resp.Choices) > 0 {
		fmt.Fprintln(a.stdout, resp.Choices[0].Message.Content)
	}
	a.logUsage(resp.Usage)
	return nil
}

func (a *App) runStreamingChat(ctx context.Context, completions *wopr.ChatCompletions, req openai.ChatCompletionRequest) error {
	stream, err := completions.NewStreaming(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	defer stream.Close()

	var text strings.Builder
	for chunk, err := range stream.All() {
		if err != nil {
			fmt.Fprintln(a.stdout)
			return a.fail(err)
		}
		if a.jsonOutput {
			// One chunk per line.
			if err := writeJSONLine(a.stdout, chunk); err != nil {
				return err
			}
			continue
		}
		for _, choice := range chunk.Choices {
			fmt.Fprint(a.stdout, choice.Delta.Content)
			text.WriteString(choice.Delta.Content)
		}
	}

	if !a.jsonOutput {
		fmt.Fprintln(a.stdout)
	}
	a.logger.Debug("stream finished", "chars", text.Len())
	return nil
}

func (a *App) logUsage(u openai.Usage) {
	a.logger.Debug("usage",
		"prompt_tokens", u.PromptTokens,
		"completion_tokens", u.CompletionTokens,
		"total_tokens", u.TotalTokens)
}
