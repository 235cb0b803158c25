package debugstat

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
)

const CName = "common.debugstat"

var log = logger.NewNamed(CName)

type StatProvider interface {
	ProvideStat() any
	StatId() string
	StatType() string
}

type StatService interface {
	AddProvider(provider StatProvider)
	RemoveProvider(provider StatProvider)
	// GetStat collects stats from all providers, ordered by type and key
	GetStat() StatSummary
	app.ComponentRunnable
}

func New() StatService {
	return &statService{}
}

type statService struct {
	providers map[string]StatProvider
	mu        sync.Mutex
}

func (s *statService) Init(a *app.App) (err error) {
	s.providers = map[string]StatProvider{}
	return nil
}

func (s *statService) Name() (name string) {
	return CName
}

func (s *statService) Run(ctx context.Context) (err error) {
	return nil
}

func (s *statService) Close(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.providers) > 0 {
		log.Debug("closing with registered providers", zap.Int("count", len(s.providers)))
	}
	return nil
}

func provId(provider StatProvider) string {
	return provider.StatType() + "-" + provider.StatId()
}

func (s *statService) AddProvider(provider StatProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[provId(provider)] = provider
}

func (s *statService) RemoveProvider(provider StatProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.providers, provId(provider))
}

func (s *statService) GetStat() (st StatSummary) {
	s.mu.Lock()
	byType := map[string][]StatProvider{}
	for _, prov := range s.providers {
		byType[prov.StatType()] = append(byType[prov.StatType()], prov)
	}
	s.mu.Unlock()

	// providers are called outside the lock, they may take their own locks
	for tp, provs := range byType {
		stType := StatType{Type: tp}
		for _, prov := range provs {
			stType.Values = append(stType.Values, StatValue{Key: prov.StatId(), Value: prov.ProvideStat()})
		}
		slices.SortFunc(stType.Values, func(a, b StatValue) int {
			return strings.Compare(a.Key, b.Key)
		})
		st.Stats = append(st.Stats, stType)
	}
	slices.SortFunc(st.Stats, func(a, b StatType) int {
		return strings.Compare(a.Type, b.Type)
	})
	return st
}
