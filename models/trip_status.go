package models

import "business-trips-backend/lib/utils/apperrors"

type TripStatus string

const (
	TripStatusPlanned         TripStatus = "Планируемая"
	TripStatusActivated       TripStatus = "Активированная"
	TripStatusPendingApproval TripStatus = "Ожидают согласования"
	TripStatusApproved        TripStatus = "Согласована"
	TripStatusRejected        TripStatus = "Не согласована"
	TripStatusCancelled       TripStatus = "Отменена"
	TripStatusClosed          TripStatus = "Закрыта"
)

// Таблица допустимых переходов жизненного цикла.
// Отсутствие в таблице означает запрет перехода.
var allowedTransitions = map[TripStatus][]TripStatus{
	TripStatusPlanned:         {TripStatusActivated, TripStatusPendingApproval, TripStatusCancelled},
	TripStatusActivated:       {TripStatusPlanned, TripStatusPendingApproval, TripStatusCancelled},
	TripStatusPendingApproval: {TripStatusApproved, TripStatusRejected, TripStatusCancelled},
	TripStatusApproved:        {TripStatusClosed, TripStatusCancelled},
	TripStatusRejected:        {TripStatusPendingApproval, TripStatusCancelled},
	TripStatusCancelled:       {},
	TripStatusClosed:          {},
}

func (s TripStatus) IsAllowChange(to TripStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s TripStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s TripStatus) Validate() error {
	if _, exist := allowedTransitions[s]; !exist {
		return apperrors.Errorf("неизвестный статус командировки: %v", s)
	}
	return nil
}

type TripFormat string

const (
	TripFormatOnline  TripFormat = "Онлайн"
	TripFormatOffline TripFormat = "Оффлайн"
)
