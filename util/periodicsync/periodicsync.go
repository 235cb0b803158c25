package periodicsync

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app/logger"
)

type PeriodicSync interface {
	Run()
	// Kick triggers an extra call without waiting for the next tick
	Kick()
	Close()
}

type SyncerFunc func(ctx context.Context) error

func NewPeriodicSync(periodSeconds int, timeout time.Duration, caller SyncerFunc, l logger.CtxLogger) PeriodicSync {
	return NewPeriodicSyncDuration(time.Duration(periodSeconds)*time.Second, timeout, caller, l)
}

func NewPeriodicSyncDuration(period, timeout time.Duration, caller SyncerFunc, l logger.CtxLogger) PeriodicSync {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logger.CtxWithFields(ctx, zap.String("rootOp", "periodicCall"))
	return &periodicCall{
		caller:     caller,
		log:        l,
		loopCtx:    ctx,
		loopCancel: cancel,
		loopDone:   make(chan struct{}),
		kick:       make(chan struct{}, 1),
		period:     period,
		timeout:    timeout,
	}
}

type periodicCall struct {
	log        logger.CtxLogger
	caller     SyncerFunc
	loopCtx    context.Context
	loopCancel context.CancelFunc
	loopDone   chan struct{}
	kick       chan struct{}
	period     time.Duration
	timeout    time.Duration
	isRunning  atomic.Bool
}

func (p *periodicCall) Run() {
	if p.isRunning.Swap(true) {
		return
	}
	go p.loop()
}

func (p *periodicCall) loop() {
	defer close(p.loopDone)
	doCall := func() {
		ctx := p.loopCtx
		if p.timeout != 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(p.loopCtx, p.timeout)
			defer cancel()
		}
		if err := p.caller(ctx); err != nil {
			p.log.WarnCtx(ctx, "periodic call error", zap.Error(err))
		}
	}
	doCall()
	var tick <-chan time.Time
	if p.period > 0 {
		ticker := time.NewTicker(p.period)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-p.loopCtx.Done():
			return
		case <-tick:
			doCall()
		case <-p.kick:
			doCall()
		}
	}
}

func (p *periodicCall) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *periodicCall) Close() {
	if !p.isRunning.Load() {
		return
	}
	p.loopCancel()
	<-p.loopDone
}
