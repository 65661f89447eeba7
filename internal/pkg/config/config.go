package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	confv1 "connect-register/internal/conf/v1"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Module 提供 Fx 模块
var Module = fx.Module("config",
	fx.Provide(
		// 提供配置加载函数
		func() (*confv1.Bootstrap, error) {
			// 先加载 .env，使 CONFIG_PATH 等变量可以写在本地文件中
			if err := loadDotEnv(".env"); err != nil {
				return nil, err
			}

			configPath := getConfigPath()
			conf, err := Load(configPath)
			if err != nil {
				return nil, err
			}
			fmt.Printf("Configuration loaded successfully from: %s\n", configPath)
			return conf, nil
		},
	),
)

// Load 从本地 YAML 文件读取配置，并补齐默认值
func Load(configPath string) (*confv1.Bootstrap, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 允许通过环境变量覆盖，例如 AUTH_JWT_SECRET
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	localConf := &confv1.Bootstrap{}

	// 获取 Viper 的所有配置为一个 map
	m := v.AllSettings()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           localConf,
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}

	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(localConf)
	return localConf, nil
}

// applyDefaults 为未配置的注册约束与认证参数填充默认值
func applyDefaults(conf *confv1.Bootstrap) {
	if conf.Users == nil {
		conf.Users = &confv1.Users{}
	}
	u := conf.Users
	if u.UsernameMinLength == 0 {
		u.UsernameMinLength = 3
	}
	if u.UsernameMaxLength == 0 {
		u.UsernameMaxLength = 14
	}
	if u.PasswordMinLength == 0 {
		u.PasswordMinLength = 7
	}
	if u.PasswordMaxLength == 0 {
		u.PasswordMaxLength = 40
	}

	if conf.Auth == nil {
		conf.Auth = &confv1.Auth{}
	}
	if conf.Log == nil {
		conf.Log = &confv1.Log{Level: "info", Format: "json"}
	}
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// getConfigPath 从环境变量获取配置路径
func getConfigPath() string {
	// 优先使用环境变量 CONFIG_PATH
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	// 在Docker容器中，配置文件位于/app/configs/config.yaml
	// 在开发环境中，配置文件位于configs/config.yaml
	if isRunningInContainer() {
		return "/app/configs/config.yaml"
	}

	return "configs/config.yaml"
}

// isRunningInContainer 检查是否在容器中运行
func isRunningInContainer() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	if cgroup, err := os.ReadFile("/proc/1/cgroup"); err == nil {
		if strings.Contains(string(cgroup), "docker") || strings.Contains(string(cgroup), "kubepods") {
			return true
		}
	}

	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" || os.Getenv("CONTAINER") != "" {
		return true
	}

	return false
}

// ValidateConfig 验证配置的完整性
func ValidateConfig(conf *confv1.Bootstrap) error {
	if conf == nil {
		return fmt.Errorf("configuration is nil")
	}

	// 验证服务器配置
	if conf.Server == nil || conf.Server.Http == nil {
		return fmt.Errorf("server configuration is required")
	}

	// 验证数据库配置
	if conf.Data == nil || conf.Data.Database == nil {
		return fmt.Errorf("database configuration is required")
	}

	if conf.Data.Redis == nil {
		return fmt.Errorf("redis configuration is required")
	}

	if u := conf.Users; u != nil {
		if u.UsernameMinLength > u.UsernameMaxLength {
			return fmt.Errorf("users.username_min_length (%d) exceeds users.username_max_length (%d)", u.UsernameMinLength, u.UsernameMaxLength)
		}
		if u.PasswordMinLength > u.PasswordMaxLength {
			return fmt.Errorf("users.password_min_length (%d) exceeds users.password_max_length (%d)", u.PasswordMinLength, u.PasswordMaxLength)
		}
		// bcrypt 只接受 72 字节以内的密码
		if u.PasswordMaxLength > 72 {
			return fmt.Errorf("users.password_max_length (%d) exceeds bcrypt limit of 72", u.PasswordMaxLength)
		}
	}

	return nil
}
