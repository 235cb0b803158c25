// Package app wires share components together and drives their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anyproto/any-share/app/logger"
)

var (
	// values of this vars will be defined while compilation
	GitCommit, GitBranch, GitState, GitSummary, BuildDate string
	name                                                  string
)

var log = logger.NewNamed("app")

const closeTimeout = time.Minute

// Component is a minimal interface for a common app.Component
type Component interface {
	// Init will be called first
	// When returned error is not nil - app start will be aborted
	Init(a *App) (err error)
	// Name must return unique service name
	Name() (name string)
}

// ComponentRunnable is an interface for realizing ability to start background processes or deep configure service
type ComponentRunnable interface {
	Component
	// Run will be called after init stage
	// Non-nil error also will be aborted app start
	Run(ctx context.Context) (err error)
	// Close will be called when app shutting down
	// Also will be called when service return error on Init or Run stage
	// Non-nil error will be printed to log
	Close(ctx context.Context) (err error)
}

// App holds registered components in registration order
type App struct {
	components []Component
	mu         sync.RWMutex
	statMu     sync.Mutex
	startStat  StartStat
}

type StartStat struct {
	SpentMsPerComp map[string]int64
	SpentMsTotal   int64
}

// Name returns app name
func (app *App) Name() string {
	return name
}

// Version return app version
func (app *App) Version() string {
	return GitSummary
}

// StartStat returns time spent in Run per component
func (app *App) StartStat() StartStat {
	app.statMu.Lock()
	defer app.statMu.Unlock()
	return app.startStat
}

func VersionDescription() string {
	return fmt.Sprintf("build on %s from %s at #%s(%s)", BuildDate, GitBranch, GitCommit, GitState)
}

// Register adds component to registry
// All components will be started in the order they were registered
func (app *App) Register(s Component) *App {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, es := range app.components {
		if s.Name() == es.Name() {
			panic(fmt.Errorf("component '%s' already registered", s.Name()))
		}
	}
	app.components = append(app.components, s)
	return app
}

// Component returns component by name
// If component with given name wasn't registered, nil will be returned
func (app *App) Component(name string) Component {
	app.mu.RLock()
	defer app.mu.RUnlock()
	for _, s := range app.components {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// MustComponent is like Component, but it will panic if component wasn't found
func (app *App) MustComponent(name string) Component {
	s := app.Component(name)
	if s == nil {
		panic(fmt.Errorf("component '%s' not registered", name))
	}
	return s
}

// ComponentNames returns all registered names
func (app *App) ComponentNames() (names []string) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	names = make([]string, len(app.components))
	for i, c := range app.components {
		names[i] = c.Name()
	}
	return
}

// Start inits all components and then runs the runnable ones.
// On failure every runnable component up to the failed one is closed in reverse order.
func (app *App) Start(ctx context.Context) (err error) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	stat := StartStat{SpentMsPerComp: make(map[string]int64)}
	defer func() {
		app.statMu.Lock()
		app.startStat = stat
		app.statMu.Unlock()
	}()

	closeComponents := func(idx int) {
		for i := idx; i >= 0; i-- {
			if cr, ok := app.components[i].(ComponentRunnable); ok {
				if e := cr.Close(ctx); e != nil {
					log.Info("close error", zap.String("component", cr.Name()), zap.Error(e))
				}
			}
		}
	}

	for i, s := range app.components {
		if err = s.Init(app); err != nil {
			closeComponents(i)
			return fmt.Errorf("can't init component '%s': %w", s.Name(), err)
		}
	}

	for i, s := range app.components {
		cr, ok := s.(ComponentRunnable)
		if !ok {
			continue
		}
		start := time.Now()
		if err = cr.Run(ctx); err != nil {
			closeComponents(i)
			return fmt.Errorf("can't run component '%s': %w", cr.Name(), err)
		}
		spent := time.Since(start).Milliseconds()
		stat.SpentMsTotal += spent
		stat.SpentMsPerComp[s.Name()] = spent
	}
	log.Debug("all components started", zap.Int("count", len(app.components)))
	return
}

func stackAllGoroutines() []byte {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}

// Close stops the application
// All components with ComponentRunnable implementation will be closed in the reversed order
func (app *App) Close(ctx context.Context) error {
	log.Debug("close components...")
	app.mu.RLock()
	defer app.mu.RUnlock()
	done := make(chan struct{})
	go func() {
		select {
		case <-done:
			return
		case <-time.After(closeTimeout):
			_, _ = os.Stderr.Write([]byte("app.Close timeout\n"))
			_, _ = os.Stderr.Write(stackAllGoroutines())
			panic("app.Close timeout")
		}
	}()
	defer close(done)

	var errs []string
	for i := len(app.components) - 1; i >= 0; i-- {
		if cr, ok := app.components[i].(ComponentRunnable); ok {
			if e := cr.Close(ctx); e != nil {
				errs = append(errs, fmt.Sprintf("component '%s' close error: %v", cr.Name(), e))
			}
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "\n"))
	}
	log.Debug("all components have been closed")
	return nil
}
