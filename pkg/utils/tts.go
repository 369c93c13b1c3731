package utils

import (
	"context"
	"io"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// openAI speech rejects inputs beyond 4096 characters.
const ttsInputLimit = 4096

// TTSClientInterface turns generated text into a retrievable audio URL.
// Audio is an enhancement: callers treat an empty URL as "no audio".
type TTSClientInterface interface {
	Synthesize(ctx context.Context, text, languageCode string) (string, error)
}

type OpenAITTSClient struct {
	client *openai.Client
	store  FileStoreInterface
}

func NewOpenAITTSClient(apiKey string, store FileStoreInterface) *OpenAITTSClient {
	return &OpenAITTSClient{
		client: openai.NewClient(apiKey),
		store:  store,
	}
}

func (c *OpenAITTSClient) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	input := TruncateWithEllipsis(text, ttsInputLimit)

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          input,
		Voice:          openai.VoiceAlloy,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", err
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return "", err
	}

	saved, err := c.store.SaveBytes(data, ".mp3")
	if err != nil {
		return "", err
	}
	log.Printf("Synthesized %d bytes of audio for language %s", len(data), languageCode)
	return saved.URL, nil
}

// DisabledTTSClient is used when no OPENAI_API_KEY is configured; records
// are stored without audio, matching the service's pre-TTS behavior.
type DisabledTTSClient struct{}

func (DisabledTTSClient) Synthesize(context.Context, string, string) (string, error) {
	return "", nil
}
