//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/gateway/notifier"
	courier_rating_get "dispatch/internal/handlers/rest/courier_rating_get"
	job_accept_post "dispatch/internal/handlers/rest/job_accept_post"
	job_broadcast_post "dispatch/internal/handlers/rest/job_broadcast_post"
	job_get "dispatch/internal/handlers/rest/job_get"
	job_manual_assign_post "dispatch/internal/handlers/rest/job_manual_assign_post"
	job_post "dispatch/internal/handlers/rest/job_post"
	ruleset_active_get "dispatch/internal/handlers/rest/ruleset_active_get"
	ruleset_post "dispatch/internal/handlers/rest/ruleset_post"
	"dispatch/internal/handlers/tasks/broadcast_sweep"
	"dispatch/internal/handlers/tasks/rating_recompute"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/factory/broadcast_radius"
	"dispatch/internal/pkg/factory/rating_trigger"
	"dispatch/internal/pkg/factory/status_handle"
	"dispatch/internal/pkg/kafka"

	courierRepo "dispatch/internal/repository/courier"
	jobRepo "dispatch/internal/repository/job"
	rulesetRepo "dispatch/internal/repository/ruleset"
	dispatchService "dispatch/internal/service/dispatch"
	earningsService "dispatch/internal/service/earnings"
	ratingService "dispatch/internal/service/rating"

	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	SweepInterval           time.Duration
	RatingRecomputeInterval time.Duration
)

type Application struct {
	ServiceDispatch   ServiceDispatch
	ServiceEarnings   ServiceEarnings
	ServiceRating     ServiceRating
	BackgroundWorkers *background.Worker
}

type ServiceDispatch interface {
	job_post.Service
	job_get.Service
	job_broadcast_post.Service
	job_accept_post.Service
	job_manual_assign_post.Service
}

type ServiceEarnings interface {
	ruleset_post.Service
	ruleset_active_get.Service
}

type ServiceRating interface {
	courier_rating_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSweepInterval,
		provideRatingRecomputeInterval,

		provideJobRepository,
		provideCourierRepository,
		provideRuleSetRepository,

		provideNotifier,
		provideRadiusPolicy,
		provideRatingTrigger,

		provideServiceEarnings,
		provideServiceRating,
		provideDispatchDefaults,
		provideServiceDispatch,

		provideBroadcastSweepTask,
		provideRatingRecomputeTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatch)),
		wire.Bind(new(ServiceEarnings), new(*earningsService.Earnings)),
		wire.Bind(new(ServiceRating), new(*ratingService.Rating)),

		wire.Bind(new(dispatchService.JobStore), new(*jobRepo.Repository)),
		wire.Bind(new(dispatchService.Directory), new(*courierRepo.Repository)),
		wire.Bind(new(dispatchService.Notifier), new(*notifier.Notifier)),
		wire.Bind(new(dispatchService.EarningsCalculator), new(*earningsService.Earnings)),
		wire.Bind(new(dispatchService.RadiusPolicy), new(*broadcast_radius.RadiusPolicy)),
		wire.Bind(new(dispatchService.RatingTrigger), new(*rating_trigger.Trigger)),
		wire.Bind(new(earningsService.Repository), new(*rulesetRepo.Repository)),
		wire.Bind(new(ratingService.JobHistory), new(*jobRepo.Repository)),
		wire.Bind(new(ratingService.CourierRepository), new(*courierRepo.Repository)),
		wire.Bind(new(rating_trigger.Recomputer), new(*ratingService.Rating)),
		wire.Bind(new(notifier.Producer), new(*kafka.Producer)),

		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),
		wire.Bind(new(earningsService.TxManager), new(*tx.Manager)),

		wire.Bind(new(broadcast_sweep.Service), new(*dispatchService.Dispatch)),
		wire.Bind(new(rating_recompute.Service), new(*ratingService.Rating)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	StatusFactory *status_handle.StatusHandlerFactory
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-job-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideJobRepository,
		provideCourierRepository,
		provideRuleSetRepository,

		provideNotifier,
		provideRadiusPolicy,
		provideRatingTrigger,

		provideServiceEarnings,
		provideServiceRating,
		provideDispatchDefaults,
		provideServiceDispatch,
		provideStatusHandlerFactory,

		wire.Bind(new(dispatchService.JobStore), new(*jobRepo.Repository)),
		wire.Bind(new(dispatchService.Directory), new(*courierRepo.Repository)),
		wire.Bind(new(dispatchService.Notifier), new(*notifier.Notifier)),
		wire.Bind(new(dispatchService.EarningsCalculator), new(*earningsService.Earnings)),
		wire.Bind(new(dispatchService.RadiusPolicy), new(*broadcast_radius.RadiusPolicy)),
		wire.Bind(new(dispatchService.RatingTrigger), new(*rating_trigger.Trigger)),
		wire.Bind(new(earningsService.Repository), new(*rulesetRepo.Repository)),
		wire.Bind(new(ratingService.JobHistory), new(*jobRepo.Repository)),
		wire.Bind(new(ratingService.CourierRepository), new(*courierRepo.Repository)),
		wire.Bind(new(rating_trigger.Recomputer), new(*ratingService.Rating)),
		wire.Bind(new(notifier.Producer), new(*kafka.Producer)),

		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),
		wire.Bind(new(earningsService.TxManager), new(*tx.Manager)),

		wire.Bind(new(status_handle.Lifecycle), new(*dispatchService.Dispatch)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideJobRepository(querier *querier.Querier) *jobRepo.Repository {
	return jobRepo.New(querier)
}

func provideCourierRepository(querier *querier.Querier) *courierRepo.Repository {
	return courierRepo.New(querier)
}

func provideRuleSetRepository(querier *querier.Querier) *rulesetRepo.Repository {
	return rulesetRepo.New(querier)
}

func provideNotifier(log logger.Logger, producer notifier.Producer, cfg *config.Config) *notifier.Notifier {
	return notifier.New(log, producer, cfg.Kafka.DriverTopic, cfg.Kafka.AdminTopic)
}

func provideRadiusPolicy(cfg *config.Config) *broadcast_radius.RadiusPolicy {
	return broadcast_radius.New(cfg.Broadcast.RadiusGrowthFactor, cfg.Broadcast.RadiusCapKm)
}

func provideRatingTrigger(
	log logger.Logger,
	cfg *config.Config,
	service rating_trigger.Recomputer,
) (*rating_trigger.Trigger, error) {
	policy := rating_trigger.Policy(cfg.Rating.TriggerPolicy)
	if !policy.IsValid() {
		return nil, fmt.Errorf("unknown rating trigger policy %q", cfg.Rating.TriggerPolicy)
	}
	return rating_trigger.New(log, policy, service), nil
}

func provideServiceEarnings(
	repository earningsService.Repository,
	txManager earningsService.TxManager,
) *earningsService.Earnings {
	return earningsService.New(repository, txManager)
}

func provideServiceRating(
	log logger.Logger,
	jobs ratingService.JobHistory,
	couriers ratingService.CourierRepository,
) *ratingService.Rating {
	return ratingService.New(log, jobs, couriers)
}

func provideDispatchDefaults(cfg *config.Config) dispatchService.Defaults {
	return dispatchService.Defaults{
		BroadcastTTL:    cfg.Broadcast.DefaultTTL,
		BroadcastRadius: cfg.Broadcast.DefaultRadiusKm,
		MaxAttempts:     cfg.Broadcast.MaxAttempts,
	}
}

func provideServiceDispatch(
	log logger.Logger,
	jobs dispatchService.JobStore,
	directory dispatchService.Directory,
	notifierGateway dispatchService.Notifier,
	earnings dispatchService.EarningsCalculator,
	radius dispatchService.RadiusPolicy,
	rating dispatchService.RatingTrigger,
	txManager dispatchService.TxManager,
	defaults dispatchService.Defaults,
) *dispatchService.Dispatch {
	return dispatchService.New(
		log,
		jobs,
		directory,
		notifierGateway,
		earnings,
		radius,
		rating,
		txManager,
		defaults,
	)
}

func provideStatusHandlerFactory(dispatchSvc status_handle.Lifecycle) *status_handle.StatusHandlerFactory {
	return status_handle.NewStatusHandlerFactory(dispatchSvc)
}

func provideSweepInterval(cfg *config.Config) SweepInterval {
	return SweepInterval(cfg.Tasks.BroadcastSweepInterval)
}

func provideRatingRecomputeInterval(cfg *config.Config) RatingRecomputeInterval {
	return RatingRecomputeInterval(cfg.Tasks.RatingRecomputeInterval)
}

func provideBroadcastSweepTask(
	log logger.Logger,
	dispatchSvc broadcast_sweep.Service,
	interval SweepInterval,
) *broadcast_sweep.BroadcastSweep {
	return broadcast_sweep.NewBroadcastSweep(log, dispatchSvc, time.Duration(interval))
}

func provideRatingRecomputeTask(
	log logger.Logger,
	ratingSvc rating_recompute.Service,
	interval RatingRecomputeInterval,
) *rating_recompute.RatingRecompute {
	return rating_recompute.NewRatingRecompute(log, ratingSvc, time.Duration(interval))
}

func provideTaskList(
	broadcastSweepTask *broadcast_sweep.BroadcastSweep,
	ratingRecomputeTask *rating_recompute.RatingRecompute,
) []background.Task {
	return []background.Task{
		broadcastSweepTask,
		ratingRecomputeTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
