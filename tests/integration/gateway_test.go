//go:build integration

package integration

import (
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wopr-network/wopr-go/core"
	"github.com/wopr-network/wopr-go/wopr"
)

func TestGateway_ModelsList(t *testing.T) {
	client := newLiveClient(t)

	list, err := client.Models.List(testContext(t))
	if err != nil {
		t.Fatalf("Models.List() error = %v", err)
	}
	if len(list.Data) == 0 {
		t.Error("gateway returned no models")
	}
}

func TestGateway_ChatCompletion(t *testing.T) {
	client := newLiveClient(t)

	resp, err := client.Chat.Completions.New(testContext(t), openai.ChatCompletionRequest{
		Model: testModel(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Say 'hello' and nothing else."},
		},
		MaxTokens: 16,
	})
	if err != nil {
		t.Fatalf("Chat.Completions.New() error = %v", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		t.Errorf("empty response: %+v", resp)
	}
}

func TestGateway_ChatCompletion_Streaming(t *testing.T) {
	client := newLiveClient(t)

	stream, err := client.Chat.Completions.NewStreaming(testContext(t), openai.ChatCompletionRequest{
		Model: testModel(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Count from 1 to 3."},
		},
	})
	if err != nil {
		t.Fatalf("NewStreaming() error = %v", err)
	}
	defer stream.Close()

	var sb strings.Builder
	chunks := 0
	for chunk, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		chunks++
		if len(chunk.Choices) > 0 {
			sb.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	if chunks == 0 {
		t.Error("stream produced no chunks")
	}
	t.Logf("streamed %d chunks: %s", chunks, sb.String())
}

func TestGateway_InvalidKey(t *testing.T) {
	skipIfNoAPIKey(t)

	client, err := wopr.New("wopr_invalid_key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Models.List(testContext(t))
	if !errors.Is(err, core.ErrAuthentication) {
		t.Fatalf("error = %v, want ErrAuthentication", err)
	}

	var werr *core.Error
	if errors.As(err, &werr) && werr.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", werr.StatusCode)
	}
}

func TestGateway_ValidationNeverSends(t *testing.T) {
	client, err := wopr.New("wopr_invalid_key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.SMS.Send(testContext(t), wopr.SMSSendParams{To: "+15551230000"})
	if !errors.Is(err, core.ErrInvalidParams) {
		t.Fatalf("error = %v, want ErrInvalidParams", err)
	}
}
