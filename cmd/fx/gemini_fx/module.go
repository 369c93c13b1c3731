package gemini_fx

import (
	"log"

	"go.uber.org/fx"

	"cropgenesis/pkg/config"
	"cropgenesis/pkg/memcache"
	"cropgenesis/pkg/utils"
)

var Module = fx.Provide(
	provideAIClient,
	memcache.NewAIStatusStore,
)

// provideAIClient wires the real Gemini client when a key is present and
// the explicit unconfigured variant otherwise, so the server always boots
// and AI endpoints report 503 instead of crashing at startup.
func provideAIClient(lc fx.Lifecycle, cfg *config.Config) (utils.AIClientInterface, error) {
	if cfg.GeminiAPIKey == "" {
		return utils.NewUnconfiguredAIClient(), nil
	}

	client, err := utils.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	log.Printf("Gemini client initialized with model %s", cfg.GeminiModel)

	lc.Append(fx.StopHook(func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Gemini client: %v", err)
		}
	}))
	return client, nil
}
