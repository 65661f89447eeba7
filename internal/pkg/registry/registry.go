package registry

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	confv1 "connect-register/internal/conf/v1"

	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServiceName 是注册到 Consul 的服务名
type ServiceName string

var Module = fx.Module("registry",
	fx.Provide(NewConsulRegistry),
)

// ConsulRegistry 在服务启动时注册到 Consul，停止时注销
type ConsulRegistry struct {
	client     *api.Client
	registered *api.AgentServiceRegistration
	logger     *zap.Logger
}

// NewConsulRegistry 创建注册器；未启用 Consul 时返回的注册器不做任何事
func NewConsulRegistry(lc fx.Lifecycle, conf *confv1.Bootstrap, name ServiceName, logger *zap.Logger) (*ConsulRegistry, error) {
	r := &ConsulRegistry{logger: logger}

	if conf.Registry == nil || conf.Registry.Consul == nil || !conf.Registry.Consul.Enabled {
		logger.Info("Consul registry disabled")
		return r, nil
	}
	consulCfg := conf.Registry.Consul

	apiCfg := api.DefaultConfig()
	if consulCfg.Address != "" {
		apiCfg.Address = consulCfg.Address
	}
	if consulCfg.Scheme != "" {
		apiCfg.Scheme = consulCfg.Scheme
	}
	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}
	r.client = client

	registration, err := buildRegistration(string(name), conf.Server.Http.Addr, consulCfg)
	if err != nil {
		return nil, err
	}
	r.registered = registration

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return r.Register()
		},
		OnStop: func(ctx context.Context) error {
			return r.Deregister()
		},
	})

	return r, nil
}

// buildRegistration 根据监听地址构造服务注册信息，健康检查使用 TCP
func buildRegistration(name, listenAddr string, c *confv1.Registry_Consul) (*api.AgentServiceRegistration, error) {
	host, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return nil, fmt.Errorf("parse listen address %q: %w", listenAddr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("parse listen port %q: %w", portStr, err)
	}
	if host == "" || host == "0.0.0.0" {
		if hostname, err := os.Hostname(); err == nil {
			host = hostname
		} else {
			host = "127.0.0.1"
		}
	}

	interval := c.HealthCheckInterval
	if interval == "" {
		interval = "10s"
	}

	return &api.AgentServiceRegistration{
		ID:      fmt.Sprintf("%s-%s", name, uuid.NewString()),
		Name:    name,
		Address: host,
		Port:    port,
		Tags:    c.Tags,
		Check: &api.AgentServiceCheck{
			TCP:                            net.JoinHostPort(host, portStr),
			Interval:                       interval,
			DeregisterCriticalServiceAfter: "1m",
		},
	}, nil
}

func (r *ConsulRegistry) Register() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Agent().ServiceRegister(r.registered); err != nil {
		return fmt.Errorf("register service to consul: %w", err)
	}
	r.logger.Info("Service registered to Consul",
		zap.String("id", r.registered.ID),
		zap.String("name", r.registered.Name),
	)
	return nil
}

func (r *ConsulRegistry) Deregister() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Agent().ServiceDeregister(r.registered.ID); err != nil {
		r.logger.Error("Failed to deregister service", zap.Error(err))
		return err
	}
	r.logger.Info("Service deregistered from Consul", zap.String("id", r.registered.ID))
	return nil
}
