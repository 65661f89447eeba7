// Package v1 定义服务配置结构，字段通过 json tag 与 YAML 的 snake_case 键对应
package v1

type Bootstrap struct {
	Server   *Server   `json:"server,omitempty"`
	Data     *Data     `json:"data,omitempty"`
	Auth     *Auth     `json:"auth,omitempty"`
	Users    *Users    `json:"users,omitempty"`
	Log      *Log      `json:"log,omitempty"`
	Trace    *Trace    `json:"trace,omitempty"`
	Registry *Registry `json:"registry,omitempty"`
}

type Server struct {
	Http *Server_HTTP `json:"http,omitempty"`
}

type Server_HTTP struct {
	Addr string `json:"addr,omitempty"`
	// 允许的跨域来源，为空时允许全部
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

type Data struct {
	Database *Data_Database `json:"database,omitempty"`
	Redis    *Data_Redis    `json:"redis,omitempty"`
}

type Data_Database struct {
	Host        string `json:"host,omitempty"`
	Port        int32  `json:"port,omitempty"`
	User        string `json:"user,omitempty"`
	Password    string `json:"password,omitempty"`
	DbName      string `json:"db_name,omitempty"`
	SslMode     string `json:"ssl_mode,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	MaxConns    int32  `json:"max_conns,omitempty"`
	AutoMigrate bool   `json:"auto_migrate,omitempty"`
}

type Data_Redis struct {
	Host         string `json:"host,omitempty"`
	Port         int32  `json:"port,omitempty"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	Db           int32  `json:"db,omitempty"`
	DialTimeout  int64  `json:"dial_timeout,omitempty"`
	ReadTimeout  int64  `json:"read_timeout,omitempty"`
	WriteTimeout int64  `json:"write_timeout,omitempty"`
	PoolSize     int32  `json:"pool_size,omitempty"`
	MinIdleConns int32  `json:"min_idle_conns,omitempty"`
}

type Auth struct {
	JwtSecret      string `json:"jwt_secret,omitempty"`
	JwtExpireHours int64  `json:"jwt_expire_hours,omitempty"`
	JwtIssuer      string `json:"jwt_issuer,omitempty"`
	BcryptCost     int32  `json:"bcrypt_cost,omitempty"`
}

// Users 是注册相关的可配置约束
type Users struct {
	UsernameMinLength    int32 `json:"username_min_length,omitempty"`
	UsernameMaxLength    int32 `json:"username_max_length,omitempty"`
	PasswordMinLength    int32 `json:"password_min_length,omitempty"`
	PasswordMaxLength    int32 `json:"password_max_length,omitempty"`
	PasswordAllowNumeric bool  `json:"password_allow_numeric,omitempty"`
}

type Log struct {
	Level string `json:"level,omitempty"`
	// json 或 console
	Format string `json:"format,omitempty"`
}

type Trace struct {
	Enabled     bool   `json:"enabled,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`
	Insecure    bool   `json:"insecure,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

type Registry struct {
	Consul *Registry_Consul `json:"consul,omitempty"`
}

type Registry_Consul struct {
	Enabled             bool     `json:"enabled,omitempty"`
	Address             string   `json:"address,omitempty"`
	Scheme              string   `json:"scheme,omitempty"`
	HealthCheckInterval string   `json:"health_check_interval,omitempty"`
	Tags                []string `json:"tags,omitempty"`
}
