package bootstrap

import (
	"facility-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSections,
)

// ConfigSections splits a provided config.Config into the sections components take.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.PMSConfig { return cfg.PMS },
	func(cfg config.Config) config.AMQPConfig { return cfg.AMQP },
	func(cfg config.Config) config.DraftConfig { return cfg.Draft },
	func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
)
