package effects

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Spawner запускает функцию вне текущего запроса
type Spawner func(fn func())

// Runner фоновые побочные эффекты после фиксации бронирования
// Ошибки эффектов логируются и не влияют на результат основной операции
type Runner struct {
	timeout time.Duration
	spawn   Spawner
	logger  Logger
}

// NewRunner создает новый экземпляр runner
// spawn == nil запускает эффекты в отдельной горутине
func NewRunner(timeout time.Duration, logger Logger, spawn Spawner) *Runner {
	if spawn == nil {
		spawn = func(fn func()) { go fn() }
	}
	return &Runner{
		timeout: timeout,
		spawn:   spawn,
		logger:  logger,
	}
}

// Go выполняет эффект с контекстом, отвязанным от отмены запроса
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)

	r.spawn(func() {
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("effects: %s panicked: %v", name, p)
			}
		}()

		runCtx, cancel := context.WithTimeout(detached, r.timeout)
		defer cancel()

		if err := fn(runCtx); err != nil {
			r.logger.Error("effects: %s failed: %v", name, err)
			return
		}
		r.logger.Info("effects: %s done", name)
	})
}
