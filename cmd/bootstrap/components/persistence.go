package components

import (
	"facility-booking/internal/infra/readstore"
	"facility-booking/internal/infra/repository"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/infra/uow"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// BookingRecord
		fx.Annotate(
			readstore.NewPooledBookingRecordReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// BookingRecord
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.BookingRecordWriteQueries)),
		),
		fx.Annotate(
			repository.NewBookingRecordRepository,
			fx.As(new(shared.BookingRecordRepository)),
		),
		// Idempotency
		fx.Annotate(
			repository.NewPooledIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
			fx.As(new(shared.IdempotencySweeper)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *store.Queries {
	return store.New()
}
