package metric

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/app"
)

var ctx = context.Background()

type testConfig struct {
	Config
}

func (c *testConfig) Init(a *app.App) error { return nil }
func (c *testConfig) Name() string          { return "config" }
func (c *testConfig) GetMetric() Config     { return c.Config }

func newTestMetric(t *testing.T, addr string) (*metric, *app.App) {
	m := New().(*metric)
	a := new(app.App)
	a.Register(&testConfig{Config{Addr: addr}}).Register(m)
	require.NoError(t, a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, a.Close(ctx))
	})
	return m, a
}

func TestMetric_Registry(t *testing.T) {
	m, _ := newTestMetric(t, "")
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total"})
	require.NoError(t, m.Registry().Register(counter))
	counter.Inc()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "test_total" {
			found = true
			assert.Equal(t, float64(1), f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
	assert.Nil(t, m.server)
}

func TestMetric_Serve(t *testing.T) {
	m, _ := newTestMetric(t, "127.0.0.1:0")
	require.NotEmpty(t, m.addr)

	resp, err := http.Get("http://" + m.addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
