package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/wopr-network/wopr-go/wopr"
)

func (a *App) newImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Generate images",
	}

	var req openai.ImageRequest
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate images from a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			resp, err := client.Images.Generate(cmd.Context(), req)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(resp)
			}
			for _, img := range resp.Data {
				fmt.Fprintln(a.stdout, img.URL)
			}
			return nil
		},
	}
	generate.Flags().StringVar(&req.Prompt, "prompt", "", "Image description (required)")
	generate.Flags().StringVar(&req.Model, "model", "", "Model ID")
	generate.Flags().IntVar(&req.N, "n", 1, "Number of images")
	generate.Flags().StringVar(&req.Size, "size", "", "Image size, e.g. 1024x1024")
	_ = generate.MarkFlagRequired("prompt")

	cmd.AddCommand(generate)
	return cmd
}

func (a *App) newAudioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Speech synthesis and transcription",
	}
	cmd.AddCommand(a.newSpeechCommand())
	cmd.AddCommand(a.newTranscribeCommand())
	return cmd
}

func (a *App) newSpeechCommand() *cobra.Command {
	var (
		input, model, voice, format, out string
	)

	cmd := &cobra.Command{
		Use:   "speech",
		Short: "Generate speech from text",
		Long: `Generate speech from text and write the audio to a file.

Examples:
  wopr audio speech --input "Hello" --out hello.mp3
  wopr audio speech --input "Hello" --out - > hello.mp3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			speech, err := client.Audio.Speech.New(cmd.Context(), openai.CreateSpeechRequest{
				Model:          openai.SpeechModel(model),
				Input:          input,
				Voice:          openai.SpeechVoice(voice),
				ResponseFormat: openai.SpeechResponseFormat(format),
			})
			if err != nil {
				return a.fail(err)
			}
			defer speech.Body.Close()

			if out == "-" {
				_, err = io.Copy(a.stdout, speech.Body)
				return err
			}

			n, err := writeFile(out, speech.Body)
			if err != nil {
				return a.fail(exitWithCode(ExitValidation, err))
			}
			fmt.Fprintf(a.stderr, "Wrote %d bytes (%s) to %s\n", n, speech.ContentType, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Text to speak (required)")
	cmd.Flags().StringVar(&model, "model", string(openai.TTSModel1), "Model ID")
	cmd.Flags().StringVar(&voice, "voice", string(openai.VoiceAlloy), "Voice")
	cmd.Flags().StringVar(&format, "format", "", "Audio format, e.g. mp3 or wav")
	cmd.Flags().StringVar(&out, "out", "", "Output file, or - for stdout (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (a *App) newTranscribeCommand() *cobra.Command {
	var params wopr.TranscriptionParams
	var format string

	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return a.fail(exitWithCode(ExitValidation, err))
			}
			defer f.Close()

			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			params.File = f
			params.Filename = filepath.Base(args[0])
			params.ResponseFormat = openai.AudioResponseFormat(format)

			resp, err := client.Audio.Transcriptions.New(cmd.Context(), params)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(resp)
			}
			fmt.Fprintln(a.stdout, resp.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Model, "model", "whisper-1", "Model ID")
	cmd.Flags().StringVar(&params.Language, "language", "", "Spoken language (ISO-639-1)")
	cmd.Flags().StringVar(&format, "format", "", "Response format (json or verbose_json)")
	return cmd
}

func (a *App) newVideoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Generate video",
	}

	var (
		prompt   string
		duration int
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a video clip from a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			params := wopr.VideoGenerateParams{Prompt: prompt}
			if cmd.Flags().Changed("duration") {
				params.Duration = wopr.Ptr(duration)
			}

			resp, err := client.Video.Generate(cmd.Context(), params)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(resp)
			}
			for _, v := range resp.Data {
				fmt.Fprintln(a.stdout, v.URL)
			}
			return nil
		},
	}
	generate.Flags().StringVar(&prompt, "prompt", "", "Video description (required)")
	generate.Flags().IntVar(&duration, "duration", wopr.DefaultVideoDuration, "Length in seconds (1-60)")
	_ = generate.MarkFlagRequired("prompt")

	cmd.AddCommand(generate)
	return cmd
}

func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
