package wopr

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wopr-network/wopr-go/core"
	"github.com/wopr-network/wopr-go/transport"
)

// defaultAudioFilename names the uploaded file part when none is given.
const defaultAudioFilename = "audio"

// Audio is the audio namespace.
type Audio struct {
	Transcriptions *Transcriptions
	Speech         *SpeechService
}

// TranscriptionParams describes a transcription upload.
type TranscriptionParams struct {
	// File is the audio content. It is read fully before the request is sent.
	File     io.Reader `json:"-" validate:"-"`
	Filename string    `json:"-"`

	Model          string                    `json:"model" validate:"required"`
	Language       string                    `json:"language,omitempty"`
	ResponseFormat openai.AudioResponseFormat `json:"response_format,omitempty"`
}

// Transcriptions turns audio into text.
type Transcriptions struct {
	d *transport.Dispatcher
}

// New uploads audio as multipart/form-data and returns its transcription.
// Only the JSON response formats are supported.
func (t *Transcriptions) New(ctx context.Context, params TranscriptionParams) (*openai.AudioResponse, error) {
	if params.File == nil {
		return nil, &core.ValidationError{Field: "file", Message: "is required"}
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	filename := params.Filename
	if filename == "" {
		filename = defaultAudioFilename
	}

	form := transport.NewForm().
		File("file", filename, params.File).
		Field("model", params.Model).
		FieldIf("language", params.Language).
		FieldIf("response_format", string(params.ResponseFormat))

	var resp openai.AudioResponse
	if err := t.d.PostForm(ctx, "/audio/transcriptions", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Speech is generated audio. The caller must close Body.
type Speech struct {
	Body        io.ReadCloser
	ContentType string
}

// SpeechService turns text into audio.
type SpeechService struct {
	d *transport.Dispatcher
}

// New generates speech. The audio is returned unread.
func (s *SpeechService) New(ctx context.Context, req openai.CreateSpeechRequest) (*Speech, error) {
	resp, err := s.d.PostJSONBinary(ctx, "/audio/speech", req)
	if err != nil {
		return nil, err
	}
	return &Speech{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
