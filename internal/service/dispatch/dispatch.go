package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Defaults применяются к заданию, когда запрос не задал собственные
// параметры трансляции.
type Defaults struct {
	BroadcastTTL    time.Duration
	BroadcastRadius float64
	MaxAttempts     int
}

type Dispatch struct {
	jobs      JobStore
	directory Directory
	notifier  Notifier
	earnings  EarningsCalculator
	radius    RadiusPolicy
	rating    RatingTrigger
	txManager TxManager
	defaults  Defaults
	log       logger.Logger
}

func New(
	log logger.Logger,
	jobs JobStore,
	directory Directory,
	notifier Notifier,
	earnings EarningsCalculator,
	radius RadiusPolicy,
	rating RatingTrigger,
	txManager TxManager,
	defaults Defaults,
) *Dispatch {
	return &Dispatch{
		jobs:      jobs,
		directory: directory,
		notifier:  notifier,
		earnings:  earnings,
		radius:    radius,
		rating:    rating,
		txManager: txManager,
		defaults:  defaults,
		log:       log,
	}
}

// CreateJob создает задание в состоянии not_started/pending.
// Трансляция запускается отдельным вызовом StartBroadcast.
func (d *Dispatch) CreateJob(ctx context.Context, jobModify entities.JobModify) (*entities.DeliveryJob, error) {
	if jobModify.Fee == nil || jobModify.Fee.Sign() <= 0 {
		return nil, ErrMissingRequiredFields
	}

	if jobModify.Priority != nil && !jobModify.Priority.IsValid() {
		return nil, ErrMissingRequiredFields
	}

	if jobModify.Code == nil {
		jobModify.Code = pointer.To(newJobCode())
	}
	if jobModify.Priority == nil {
		jobModify.Priority = pointer.To(entities.DefaultPriority)
	}
	if jobModify.BroadcastTTL == nil {
		jobModify.BroadcastTTL = pointer.To(d.defaults.BroadcastTTL)
	}
	if jobModify.BroadcastRadius == nil {
		jobModify.BroadcastRadius = pointer.To(d.defaults.BroadcastRadius)
	}
	if jobModify.MaxAttempts == nil {
		jobModify.MaxAttempts = pointer.To(d.defaults.MaxAttempts)
	}

	job, err := d.jobs.Create(ctx, jobModify)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (d *Dispatch) GetJob(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error) {
	if !isValidJobID(jobID) {
		return nil, ErrInvalidJobID
	}
	return d.jobs.GetByID(ctx, jobID)
}

// StartBroadcast переводит задание not_started → broadcasting и рассылает
// оффер всем подходящим курьерам.
func (d *Dispatch) StartBroadcast(ctx context.Context, jobID uuid.UUID) (*entities.BroadcastResult, error) {
	if !isValidJobID(jobID) {
		return nil, ErrInvalidJobID
	}

	job, err := d.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	if job.BroadcastStatus != entities.BroadcastNotStarted {
		return nil, ErrInvalidState
	}

	return d.startBroadcastAttempt(ctx, job, []entities.BroadcastStatus{entities.BroadcastNotStarted}, job.BroadcastRadius)
}

// startBroadcastAttempt — общий путь первичного запуска и ретрая после
// истечения. Пишет переход условно; выборка курьеров пересчитывается на
// каждой попытке, так как радиус мог измениться.
func (d *Dispatch) startBroadcastAttempt(
	ctx context.Context,
	job *entities.DeliveryJob,
	from []entities.BroadcastStatus,
	radiusKm float64,
) (*entities.BroadcastResult, error) {
	offeredAt := time.Now().UTC()
	endsAt := offeredAt.Add(job.BroadcastTTL)

	updated, err := d.jobs.StartBroadcast(ctx, job.ID, from, radiusKm, offeredAt, endsAt)
	if err != nil {
		return nil, fmt.Errorf("start broadcast: %w", err)
	}
	if updated == nil {
		return nil, ErrInvalidState
	}

	eligible := d.findEligible(ctx, updated)

	courierIDs := make([]int64, 0, len(eligible))
	for _, courier := range eligible {
		courierIDs = append(courierIDs, courier.ID)
	}

	d.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventJobBroadcast,
		Target:     entities.TargetBroadcastSet,
		CourierIDs: courierIDs,
		Payload: map[string]any{
			"job_id":    updated.ID.String(),
			"code":      updated.Code,
			"fee":       updated.Fee.String(),
			"priority":  updated.Priority.String(),
			"ends_at":   endsAt,
			"attempt":   updated.BroadcastAttempts,
			"radius_km": radiusKm,
		},
		OccurredAt: offeredAt,
	})
	d.notifier.Publish(ctx, entities.Event{
		Type:   entities.EventJobBroadcast,
		Target: entities.TargetAdmin,
		Payload: map[string]any{
			"job_id":   updated.ID.String(),
			"attempt":  updated.BroadcastAttempts,
			"couriers": len(courierIDs),
		},
		OccurredAt: offeredAt,
	})

	return &entities.BroadcastResult{
		Job:             updated,
		EligibleCourier: courierIDs,
		Attempt:         updated.BroadcastAttempts,
		EndsAt:          endsAt,
	}, nil
}

// findEligible возвращает курьеров для рассылки. Ошибка справочника здесь
// не критична: трансляция уже зафиксирована, поэтому сбой трактуется как
// пустая выборка и только логируется.
func (d *Dispatch) findEligible(ctx context.Context, job *entities.DeliveryJob) []entities.Courier {
	filter := entities.EligibilityFilter{
		Active: true,
		Online: true,
	}
	if job.Pickup != nil && job.BroadcastRadius > 0 {
		filter.Center = job.Pickup
		filter.RadiusKm = job.BroadcastRadius
	}

	eligible, err := d.directory.FindEligible(ctx, filter)
	if err != nil {
		d.log.With(
			logger.NewField("job", job.ID.String()),
			logger.NewField("error", err),
		).Warn("eligible couriers lookup failed, broadcasting to empty set")
		return nil
	}
	return eligible
}

// Accept разрешает гонку принятия: побеждает ровно один курьер, остальные
// получают ErrAlreadyAssigned, а не тихую перезапись.
func (d *Dispatch) Accept(ctx context.Context, jobID uuid.UUID, courierID int64) (*entities.DeliveryJob, error) {
	if !isValidJobID(jobID) {
		return nil, ErrInvalidJobID
	}
	if !isValidCourierID(courierID) {
		return nil, ErrInvalidCourierID
	}

	job, err := d.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	// Ошибки тарифной конфигурации имеют прямой финансовый эффект и
	// блокируют переход, а не заменяются нулями.
	split, err := d.earnings.ComputeSplit(ctx, job.Fee)
	if err != nil {
		return nil, fmt.Errorf("compute earnings split: %w", err)
	}

	now := time.Now().UTC()
	accepted, err := d.jobs.Accept(ctx, jobID, courierID, *split, now)
	if err != nil {
		return nil, fmt.Errorf("accept job: %w", err)
	}
	if accepted == nil {
		return nil, d.classifyAcceptRejection(ctx, jobID, now)
	}

	if err := d.directory.ApplyCounters(ctx, courierID, entities.CourierCounters{Assigned: 1, Accepted: 1}); err != nil {
		d.log.With(
			logger.NewField("job", jobID.String()),
			logger.NewField("courier", courierID),
			logger.NewField("error", err),
		).Error("apply accept counters")
	}

	d.publishAccepted(ctx, accepted, courierID, now)
	return accepted, nil
}

// classifyAcceptRejection перечитывает задание и объясняет, почему условная
// запись не прошла. Вызывающий может перечитать состояние и повторить с
// актуальными данными.
func (d *Dispatch) classifyAcceptRejection(ctx context.Context, jobID uuid.UUID, now time.Time) error {
	job, err := d.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("re-read job after rejected accept: %w", err)
	}

	switch {
	case job.AssignedTo != nil:
		return ErrAlreadyAssigned
	case job.BroadcastStatus == entities.Broadcasting &&
		job.BroadcastEndTime != nil && now.After(*job.BroadcastEndTime):
		return ErrBroadcastExpired
	default:
		return ErrNotBroadcasting
	}
}

func (d *Dispatch) publishAccepted(ctx context.Context, job *entities.DeliveryJob, winnerID int64, now time.Time) {
	payload := map[string]any{
		"job_id":  job.ID.String(),
		"code":    job.Code,
		"courier": winnerID,
	}

	d.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventJobAccepted,
		Target:     entities.TargetDriver,
		CourierIDs: []int64{winnerID},
		Payload:    payload,
		OccurredAt: now,
	})

	// Остальным участникам трансляции сообщаем, что оффер разобран.
	losers := make([]int64, 0)
	for _, courier := range d.findEligible(ctx, job) {
		if courier.ID != winnerID {
			losers = append(losers, courier.ID)
		}
	}
	if len(losers) > 0 {
		d.notifier.Publish(ctx, entities.Event{
			Type:       entities.EventJobTakenByOther,
			Target:     entities.TargetBroadcastSet,
			CourierIDs: losers,
			Payload:    payload,
			OccurredAt: now,
		})
	}

	d.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventJobAccepted,
		Target:     entities.TargetAdmin,
		Payload:    payload,
		OccurredAt: now,
	})
}

// ManualAssign — административный обход гонки после исчерпания попыток.
// Тариф и счётчики применяются так же, как при обычном принятии.
func (d *Dispatch) ManualAssign(ctx context.Context, jobID uuid.UUID, courierID int64) (*entities.DeliveryJob, error) {
	if !isValidJobID(jobID) {
		return nil, ErrInvalidJobID
	}
	if !isValidCourierID(courierID) {
		return nil, ErrInvalidCourierID
	}

	job, err := d.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job.AssignedTo != nil {
		return nil, ErrAlreadyAssigned
	}

	courier, err := d.directory.GetByID(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("get courier: %w", err)
	}

	split, err := d.earnings.ComputeSplit(ctx, job.Fee)
	if err != nil {
		return nil, fmt.Errorf("compute earnings split: %w", err)
	}

	now := time.Now().UTC()
	var assigned *entities.DeliveryJob
	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		assigned, err = d.jobs.ManualAssign(ctx, jobID, courier.ID, *split, now)
		if err != nil {
			return fmt.Errorf("manual assign: %w", err)
		}
		if assigned == nil {
			job, rereadErr := d.jobs.GetByID(ctx, jobID)
			if rereadErr != nil {
				return fmt.Errorf("re-read job after rejected manual assign: %w", rereadErr)
			}
			if job.AssignedTo != nil {
				return ErrAlreadyAssigned
			}
			return ErrInvalidState
		}

		if err := d.directory.ApplyCounters(ctx, courier.ID, entities.CourierCounters{Assigned: 1}); err != nil {
			return fmt.Errorf("apply manual assign counters: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"job_id":  assigned.ID.String(),
		"code":    assigned.Code,
		"courier": courier.ID,
	}
	d.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventManualAssigned,
		Target:     entities.TargetDriver,
		CourierIDs: []int64{courier.ID},
		Payload:    payload,
		OccurredAt: now,
	})
	d.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventManualAssigned,
		Target:     entities.TargetAdmin,
		Payload:    payload,
		OccurredAt: now,
	})

	return assigned, nil
}

// ProcessExpiredBroadcasts — один проход планировщика. Ошибка по одному
// заданию не прерывает обработку остальных; повторный проход по уже
// обработанному заданию — no-op за счёт условных переходов.
func (d *Dispatch) ProcessExpiredBroadcasts(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	expired, err := d.jobs.ListExpiredBroadcasting(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list expired broadcasts: %w", err)
	}

	processed := 0
	for i := range expired {
		job := expired[i]
		if err := d.handleExpiredBroadcast(ctx, &job, now); err != nil {
			d.log.With(
				logger.NewField("job", job.ID.String()),
				logger.NewField("error", err),
			).Error("expired broadcast handling failed, continuing sweep")
			continue
		}
		processed++
	}
	return processed, nil
}

func (d *Dispatch) handleExpiredBroadcast(ctx context.Context, job *entities.DeliveryJob, now time.Time) error {
	if job.Status.IsTerminal() {
		// Задание уже закрыто (например, отменено во время трансляции) —
		// жизненный цикл не возобновляем.
		return nil
	}

	marked, err := d.jobs.MarkExpired(ctx, job.ID, now)
	if err != nil {
		return fmt.Errorf("mark expired: %w", err)
	}
	if marked == nil {
		// Кто-то успел принять или другой проход уже обработал.
		return nil
	}

	d.notifier.Publish(ctx, entities.Event{
		Type:   entities.EventBroadcastExpired,
		Target: entities.TargetAdmin,
		Payload: map[string]any{
			"job_id":  marked.ID.String(),
			"attempt": marked.BroadcastAttempts,
		},
		OccurredAt: now,
	})

	if marked.BroadcastAttempts < marked.MaxAttempts {
		widened := d.radius.Next(marked.BroadcastRadius)
		_, err := d.startBroadcastAttempt(ctx, marked, []entities.BroadcastStatus{entities.BroadcastExpired}, widened)
		if err != nil {
			return fmt.Errorf("retry broadcast: %w", err)
		}
		return nil
	}

	pending, err := d.jobs.MarkManualPending(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("mark manual pending: %w", err)
	}
	if pending == nil {
		return nil
	}

	d.notifier.Publish(ctx, entities.Event{
		Type:   entities.EventManualRequired,
		Target: entities.TargetAdmin,
		Payload: map[string]any{
			"job_id":   pending.ID.String(),
			"code":     pending.Code,
			"attempts": pending.BroadcastAttempts,
			"severity": "failure",
		},
		OccurredAt: now,
	})
	return nil
}

// newJobCode генерирует человекочитаемый код задания.
func newJobCode() string {
	id := uuid.New()
	return fmt.Sprintf("JOB-%s-%s", time.Now().UTC().Format("20060102"), id.String()[:8])
}
