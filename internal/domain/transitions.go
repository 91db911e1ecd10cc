package domain

// Transition действие над статусом бронирования
type Transition string

const (
	TransitionConfirm  Transition = "confirm"
	TransitionStart    Transition = "start"
	TransitionComplete Transition = "complete"
	TransitionCancel   Transition = "cancel"
)

// transitionSources допустимые исходные статусы для каждого действия
//
//	pending/awaiting_confirmation           --confirm-->  confirmed
//	pending/confirmed/awaiting_confirmation --start-->    in_progress
//	confirmed/in_progress                   --complete--> completed
//	любой нетерминальный                    --cancel-->   cancelled
var transitionSources = map[Transition][]BookingStatus{
	TransitionConfirm:  {StatusPending, StatusAwaitingConfirmation},
	TransitionStart:    {StatusPending, StatusConfirmed, StatusAwaitingConfirmation},
	TransitionComplete: {StatusConfirmed, StatusInProgress},
	TransitionCancel: {
		StatusPending, StatusAwaitingConfirmation, StatusConfirmed, StatusInProgress, StatusBlocked,
	},
}

var transitionTargets = map[Transition]BookingStatus{
	TransitionConfirm:  StatusConfirmed,
	TransitionStart:    StatusInProgress,
	TransitionComplete: StatusCompleted,
	TransitionCancel:   StatusCancelled,
}

// IsValid проверяет, что действие известно
func (t Transition) IsValid() bool {
	_, ok := transitionTargets[t]
	return ok
}

// Target целевой статус действия
func (t Transition) Target() BookingStatus {
	return transitionTargets[t]
}

// CanApply проверяет, что действие допустимо из статуса from
// Из терминальных статусов не выходит ни одно действие
func (t Transition) CanApply(from BookingStatus) bool {
	if from.IsTerminal() {
		return false
	}
	for _, s := range transitionSources[t] {
		if s == from {
			return true
		}
	}
	return false
}

// IsAdvancedPastConfirmed true, если бронирование ушло дальше confirmed
// (используется при автоподтверждении после оплаты)
func (s BookingStatus) IsAdvancedPastConfirmed() bool {
	return s == StatusConfirmed || s == StatusInProgress || s == StatusCompleted || s == StatusCancelled
}
