package tts_fx

import (
	"log"

	"go.uber.org/fx"

	"cropgenesis/pkg/config"
	"cropgenesis/pkg/utils"
)

var Module = fx.Provide(provideTTSClient)

func provideTTSClient(cfg *config.Config, store utils.FileStoreInterface) utils.TTSClientInterface {
	if cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY not set, responses will be stored without audio")
		return utils.DisabledTTSClient{}
	}
	return utils.NewOpenAITTSClient(cfg.OpenAIAPIKey, store)
}
