package chat_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"edupath/internal/config"
	"edupath/internal/services"
	mem "edupath/pkg/memcache"
	"edupath/pkg/utils"
)

var Module = fx.Provide(
	ProvideChatModel,
	ProvideChatService)

// ProvideChatModel builds the configured provider's client. Without an API
// key there is no model and the chat service answers with its fallback.
func ProvideChatModel(lc fx.Lifecycle, conf *config.Config, log *zap.Logger) (utils.ChatModel, error) {
	model, err := utils.NewChatModel(conf.Chat.Provider, conf.Chat.APIKey, conf.Chat.Model)
	if err != nil {
		return nil, err
	}
	if model == nil {
		log.Warn("Chat API key not set, answers will use the fallback text")
		return nil, nil
	}

	log.Info("Initialized chat model", zap.String("provider", conf.Chat.Provider), zap.String("model", conf.Chat.Model))
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return model.Close()
		},
	})
	return model, nil
}

func ProvideChatService(model utils.ChatModel, cache mem.TTLStore, conf *config.Config, log *zap.Logger) services.ChatServiceInterface {
	return services.NewChatService(model, cache, conf.Chat.Timeout, conf.Chat.CacheTTL, log)
}
