package components

import (
	"facility-booking/internal/infra/draftstore"
	"facility-booking/internal/infra/events"
	"facility-booking/internal/infra/pms"
	"facility-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

// GatewayModule wires the non-SQL backends: Redis drafts, the PMS API and the event broker.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			draftstore.NewRedisStore,
			fx.As(new(shared.DraftStore)),
		),
		fx.Annotate(
			pms.NewClient,
			fx.As(new(shared.PMSGateway)),
		),
		fx.Annotate(
			events.NewPublisher,
			fx.As(new(shared.EventPublisher)),
		),
	),
)
