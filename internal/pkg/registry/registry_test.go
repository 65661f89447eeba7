package registry

import (
	"testing"

	confv1 "connect-register/internal/conf/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type testLifecycle struct {
	hooks []fx.Hook
}

func (tl *testLifecycle) Append(hook fx.Hook) {
	tl.hooks = append(tl.hooks, hook)
}

func TestBuildRegistration(t *testing.T) {
	reg, err := buildRegistration("register", "10.0.0.5:8080", &confv1.Registry_Consul{Tags: []string{"v1"}})
	require.NoError(t, err)

	assert.Equal(t, "register", reg.Name)
	assert.Equal(t, "10.0.0.5", reg.Address)
	assert.Equal(t, 8080, reg.Port)
	assert.Equal(t, []string{"v1"}, reg.Tags)
	assert.Equal(t, "10.0.0.5:8080", reg.Check.TCP)
	assert.Equal(t, "10s", reg.Check.Interval)
	assert.Contains(t, reg.ID, "register-")
}

func TestBuildRegistration_InvalidAddr(t *testing.T) {
	_, err := buildRegistration("register", "no-port", &confv1.Registry_Consul{})
	assert.Error(t, err)
}

func TestNewConsulRegistry_Disabled(t *testing.T) {
	lc := &testLifecycle{}

	r, err := NewConsulRegistry(lc, &confv1.Bootstrap{}, "register", zap.NewNop())

	require.NoError(t, err)
	assert.Empty(t, lc.hooks)
	assert.NoError(t, r.Register())
	assert.NoError(t, r.Deregister())
}

func TestNewConsulRegistry_Enabled(t *testing.T) {
	lc := &testLifecycle{}
	conf := &confv1.Bootstrap{
		Server: &confv1.Server{Http: &confv1.Server_HTTP{Addr: "127.0.0.1:8080"}},
		Registry: &confv1.Registry{Consul: &confv1.Registry_Consul{
			Enabled: true,
			Address: "127.0.0.1:8500",
		}},
	}

	r, err := NewConsulRegistry(lc, conf, "register", zap.NewNop())

	require.NoError(t, err)
	assert.NotNil(t, r.client)
	assert.Len(t, lc.hooks, 1)
}
