package debugstat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/app"
)

type testProvider struct {
	id, tp string
	value  int
}

func (p testProvider) ProvideStat() any { return p.value }
func (p testProvider) StatId() string   { return p.id }
func (p testProvider) StatType() string { return p.tp }

func TestStatService_GetStat(t *testing.T) {
	s := New()
	a := new(app.App)
	a.Register(s)
	require.NoError(t, a.Start(context.Background()))
	defer func() {
		require.NoError(t, a.Close(context.Background()))
	}()

	s.AddProvider(testProvider{id: "b", tp: "queue", value: 2})
	s.AddProvider(testProvider{id: "a", tp: "queue", value: 1})
	s.AddProvider(testProvider{id: "x", tp: "cache", value: 3})

	assert.Equal(t, StatSummary{Stats: []StatType{
		{Type: "cache", Values: []StatValue{{Key: "x", Value: 3}}},
		{Type: "queue", Values: []StatValue{{Key: "a", Value: 1}, {Key: "b", Value: 2}}},
	}}, s.GetStat())

	s.RemoveProvider(testProvider{id: "x", tp: "cache"})
	st := s.GetStat()
	require.Len(t, st.Stats, 1)
	assert.Equal(t, "queue", st.Stats[0].Type)
}
