package config

import (
	"context"
	"log/slog"

	"github.com/draftea/offer-system/offers-service/application"
	"github.com/draftea/offer-system/offers-service/handlers"
	"github.com/draftea/offer-system/offers-service/infrastructure"
	sharedinfra "github.com/draftea/offer-system/shared/infrastructure"
	"github.com/draftea/offer-system/shared/telemetry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	OfferStore        *infrastructure.PostgresOfferStore
	SellerRepository  *infrastructure.PostgresSellerRepository
	AssignmentJournal *infrastructure.PostgresAssignmentJournal

	// Downstream clients
	PurchaseClient  *infrastructure.PurchaseHTTPClient
	TransportClient *infrastructure.TransportHTTPClient

	// Use Cases
	CreateOffer          *application.CreateOffer
	GetOffer             *application.GetOffer
	ListOffers           *application.ListOffers
	UpdateOffer          *application.UpdateOffer
	AssignOffer          *application.AssignOffer
	CancelOffer          *application.CancelOffer
	ListSellers          *application.ListSellers
	ReconcileAssignments *application.ReconcileAssignments

	// HTTP Handlers
	OfferHandlers *handlers.OfferHandlers

	// Event Handlers
	OfferCommandHandlers *handlers.OfferCommandHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.OfferServiceConfig.
			WithOTLPEndpoint(config.Telemetry.OTLPEndpoint).
			WithVersion(config.Telemetry.ServiceVersion)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			// Continue without telemetry rather than failing
			logger.Warn("failed to initialize telemetry", slog.String("error", err.Error()))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.ConnectContext(ctx, "postgres", config.GetDatabaseURL())
	if err != nil {
		deps.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(config.Database.MaxOpenConns)
	db.SetMaxIdleConns(config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(config.Database.ConnMaxLifetime)
	deps.DB = db

	if config.Database.EnsureSchema {
		if err := infrastructure.EnsureSchema(ctx, db); err != nil {
			deps.Close()
			return nil, err
		}
	}

	// Initialize AWS infrastructure
	awsOpts := sharedinfra.AWSOptions{
		Region:          config.AWS.Region,
		AccessKeyID:     config.AWS.AccessKeyID,
		SecretAccessKey: config.AWS.SecretAccessKey,
		EndpointSNS:     config.AWS.EndpointSNS,
		EndpointSQS:     config.AWS.EndpointSQS,
	}

	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(ctx, awsOpts, config.AWS.SNSTopicArn, logger)
	if err != nil {
		deps.Close()
		return nil, errors.Wrap(err, "failed to create SNS publisher")
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(ctx, awsOpts, config.AWS.SQSQueueURL, logger,
		sharedinfra.WithWorkers(config.AWS.SQSWorkers),
		sharedinfra.WithReaders(config.AWS.SQSReaders),
		sharedinfra.WithVisibilityTimeout(config.AWS.SQSVisibilityTimeout),
	)
	if err != nil {
		deps.Close()
		return nil, errors.Wrap(err, "failed to create SQS subscriber")
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories and clients
	deps.OfferStore = infrastructure.NewPostgresOfferStore(db)
	deps.SellerRepository = infrastructure.NewPostgresSellerRepository(db)
	deps.AssignmentJournal = infrastructure.NewPostgresAssignmentJournal(db)
	deps.PurchaseClient = infrastructure.NewPurchaseHTTPClient(downstream(config.Purchase), logger)
	deps.TransportClient = infrastructure.NewTransportHTTPClient(downstream(config.Transport), logger)

	// Initialize use cases
	deps.CreateOffer = application.NewCreateOffer(deps.OfferStore, deps.SellerRepository, eventPublisher, logger)
	deps.GetOffer = application.NewGetOffer(deps.OfferStore)
	deps.ListOffers = application.NewListOffers(deps.OfferStore)
	deps.UpdateOffer = application.NewUpdateOffer(deps.OfferStore, eventPublisher, logger)
	deps.AssignOffer = application.NewAssignOffer(
		deps.OfferStore,
		deps.PurchaseClient,
		deps.TransportClient,
		deps.AssignmentJournal,
		eventPublisher,
		logger,
	)
	deps.CancelOffer = application.NewCancelOffer(deps.OfferStore, eventPublisher, logger)
	deps.ListSellers = application.NewListSellers(deps.SellerRepository)
	deps.ReconcileAssignments = application.NewReconcileAssignments(deps.OfferStore, deps.AssignmentJournal, eventPublisher, logger)

	// Initialize handlers
	deps.OfferHandlers = handlers.NewOfferHandlers(
		deps.CreateOffer,
		deps.GetOffer,
		deps.ListOffers,
		deps.UpdateOffer,
		deps.AssignOffer,
		deps.CancelOffer,
		deps.ListSellers,
		logger,
	)
	deps.OfferCommandHandlers = handlers.NewOfferCommandHandlers(deps.AssignOffer, deps.CancelOffer, logger)

	return deps, nil
}

func downstream(d Downstream) infrastructure.DownstreamConfig {
	return infrastructure.DownstreamConfig{
		BaseURL:       d.BaseURL,
		Timeout:       d.Timeout,
		RatePerSecond: d.RatePerSecond,
		Burst:         d.Burst,
	}
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event subscriber"))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event publisher"))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close database"))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
