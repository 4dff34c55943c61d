package escalationworker

import (
	"context"
	"time"

	"business-trips-backend/config"
	"business-trips-backend/db"
	employeestore "business-trips-backend/lib/employee/store"
	notifyhandler "business-trips-backend/lib/notify"
	tripstore "business-trips-backend/lib/trip/store"
	baseworker "business-trips-backend/lib/utils/base-worker"
	"business-trips-backend/lib/utils/helpers"
	"business-trips-backend/lib/utils/lock"
	"business-trips-backend/models"
)

const lockKey = "escalation-sweep"

func StartWorker(ctx context.Context) {
	period := time.Duration(config.Conf.Escalation.SweepPeriodMinutes) * time.Minute
	i := &impl{
		BaseImpl:      *baseworker.NewInstance("EscalationWorker", 15*time.Second, period),
		tripStore:     tripstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		notify:        notifyhandler.Instance,
		pendingTTL:    time.Duration(config.Conf.Escalation.PendingTTLHours) * time.Hour,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	tripStore     tripstore.Provider
	employeeStore employeestore.Provider
	notify        notifyhandler.Provider
	pendingTTL    time.Duration
}

func (i impl) handle(ctx context.Context) {
	// защита от параллельного прогона при нескольких экземплярах сервиса
	_, err := lock.WithDelay(ctx, lockKey, 0, func() error {
		i.sweep(ctx, time.Now().UTC())
		return nil
	})
	if err != nil {
		i.GetLogger().WithError(err).Error("Ошибка выполнения эскалации")
	}
}

// sweep переадресует верхнему руководителю заявки, по которым согласование
// просрочено, и перезапускает отсчет ожидания.
func (i impl) sweep(ctx context.Context, now time.Time) {
	logger := i.GetLogger()
	list, err := i.tripStore.ListOverdueApprovals(now.Add(-i.pendingTTL))
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка просроченных заявок")
		return
	}
	if len(list) == 0 {
		return
	}
	topManager, err := i.employeeStore.FirstByRole(models.RoleTopManager)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения вышестоящего руководителя")
		return
	}
	if topManager == nil {
		logger.Warn("Нет вышестоящего руководителя для эскалации")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if rec.GetManagerID() == topManager.ID {
			// заявка уже у вышестоящего руководителя, просто перезапускаем
			// отсчет ожидания, чтобы не трогать ее на каждом прогоне
			err = i.tripStore.Update(rec.ID, map[string]interface{}{
				"approval_request_date": now,
			})
			if err != nil {
				logger.
					WithError(err).
					WithField("rec_id", rec.ID).
					Error("Ошибка обновления даты запроса на согласование")
			}
			continue
		}
		updMap := map[string]interface{}{
			"manager_id":            topManager.ID,
			"approval_request_date": now,
		}
		err = i.tripStore.Update(rec.ID, updMap)
		if err != nil {
			logger.
				WithError(err).
				WithField("rec_id", rec.ID).
				Error("Ошибка переадресации заявки")
			continue
		}
		logger.
			WithField("rec_id", rec.ID).
			WithField("manager_id", topManager.ID).
			Info("Заявка переадресована вышестоящему руководителю")
		i.notify.TripEscalated(rec, topManager)
	}
}
