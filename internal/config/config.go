package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string        `yaml:"serviceName" env:"SERVICE_NAME"`
	Server      ServerConfig  `yaml:"server"      envPrefix:"SERVER_"`
	DB          DBConfig      `yaml:"db"          envPrefix:"POSTGRES_"`
	Redis       RedisConfig   `yaml:"redis"       envPrefix:"REDIS_"`
	Auth        AuthConfig    `yaml:"auth"        envPrefix:"AUTH_"`
	Email       EmailConfig   `yaml:"email"       envPrefix:"EMAIL_"`
	Audit       AuditConfig   `yaml:"audit"       envPrefix:"AUDIT_"`
	Jaeger      *JaegerConfig `yaml:"jaeger"      envPrefix:"JAEGER_"`
}

type ServerConfig struct {
	Mode     string `yaml:"mode"     env:"MODE"`
	Port     int    `yaml:"port"     env:"PORT"`
	GRPCPort int    `yaml:"grpcPort" env:"GRPC_PORT"`
	Scheme   string `yaml:"scheme"   env:"SCHEME"`
	Domain   string `yaml:"domain"   env:"DOMAIN"`
}

type DBConfig struct {
	Driver   string `yaml:"driver"   env:"DRIVER"`
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Database string `yaml:"database" env:"DB"`
}

type RedisConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr"    env:"ADDR"`
	Pass    string `yaml:"pass"    env:"PASS"`
	DB      int    `yaml:"db"      env:"DB"`
}

type AuthConfig struct {
	JWT                JWTConfig       `yaml:"jwt"                envPrefix:"JWT_"`
	Lockout            LockoutConfig   `yaml:"lockout"            envPrefix:"LOCKOUT_"`
	DeviceLockDuration time.Duration   `yaml:"deviceLockDuration" env:"DEVICE_LOCK_DURATION"`
	MaxDevices         int             `yaml:"maxDevices"         env:"MAX_DEVICES"`
	Hash               HashConfig      `yaml:"hash"               envPrefix:"HASH_"`
	StoreTimeout       time.Duration   `yaml:"storeTimeout"       env:"STORE_TIMEOUT"`
	LoginRateLimit     RateLimitConfig `yaml:"loginRateLimit"     envPrefix:"LOGIN_RATE_LIMIT_"`
	Captcha            CaptchaConfig   `yaml:"captcha"            envPrefix:"CAPTCHA_"`
}

type JWTConfig struct {
	AccessSecret  string        `yaml:"accessSecret"  env:"ACCESS_SECRET"`
	RefreshSecret string        `yaml:"refreshSecret" env:"REFRESH_SECRET"`
	Issuer        string        `yaml:"issuer"        env:"ISSUER"`
	AccessTTL     time.Duration `yaml:"accessTTL"     env:"ACCESS_TTL"`
	RefreshTTL    time.Duration `yaml:"refreshTTL"    env:"REFRESH_TTL"`
	RememberMeTTL time.Duration `yaml:"rememberMeTTL" env:"REMEMBER_ME_TTL"`
}

type LockoutConfig struct {
	Threshold int           `yaml:"threshold" env:"THRESHOLD"`
	Duration  time.Duration `yaml:"duration"  env:"DURATION"`
}

type HashConfig struct {
	Algorithm   string `yaml:"algorithm"   env:"ALGORITHM"`
	BcryptCost  int    `yaml:"bcryptCost"  env:"BCRYPT_COST"`
	Concurrency int    `yaml:"concurrency" env:"CONCURRENCY"`
}

type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"ENABLED"`
	Requests int64         `yaml:"requests" env:"REQUESTS"`
	Window   time.Duration `yaml:"window"   env:"WINDOW"`
}

type CaptchaConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Secret  string `yaml:"secret"  env:"SECRET"`
}

type EmailConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Server  string `yaml:"server"  env:"SERVER"`
	Port    int    `yaml:"port"    env:"PORT"`
	User    string `yaml:"user"    env:"USER"`
	Pass    string `yaml:"pass"    env:"PASS"`
	Admin   string `yaml:"admin"   env:"ADMIN"`
}

type AuditConfig struct {
	BufferSize int  `yaml:"bufferSize" env:"BUFFER_SIZE"`
	DropIfFull bool `yaml:"dropIfFull" env:"DROP_IF_FULL"`
	Persist    bool `yaml:"persist"    env:"PERSIST"`
}

type JaegerConfig struct {
	Sampler struct {
		Type  string  `yaml:"type"  env:"SAMPLER_TYPE"`
		Param float64 `yaml:"param" env:"SAMPLER_PARAM"`
	} `yaml:"sampler"`
	Reporter struct {
		LogSpans           bool   `yaml:"logSpans"           env:"REPORTER_LOG_SPANS"`
		LocalAgentHostPort string `yaml:"localAgentHostPort" env:"REPORTER_AGENT"`
	} `yaml:"reporter"`
}

// MustLoad reads the yaml file at path, then lets environment variables
// (and a local .env file, if any) override it.
func MustLoad(path string) Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}
	return conf
}

func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		zap.L().Debug("failed to load .env file", zap.Error(err))
	}

	conf := Config{Jaeger: &JaegerConfig{}}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return conf, err
	}

	if len(data) > 0 {
		if err = yaml.Unmarshal(data, &conf); err != nil {
			return conf, err
		}
	}

	if err = env.Parse(&conf); err != nil {
		return conf, err
	}

	conf.applyDefaults()
	return conf, nil
}

func (c *Config) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "session-guard"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "dev"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "postgres"
	}
	if c.Jaeger == nil {
		c.Jaeger = &JaegerConfig{}
	}

	a := &c.Auth
	if a.JWT.AccessTTL <= 0 {
		a.JWT.AccessTTL = AccessTokenDuration
	}
	if a.JWT.RefreshTTL <= 0 {
		a.JWT.RefreshTTL = RefreshTokenDuration
	}
	if a.JWT.RememberMeTTL <= 0 {
		a.JWT.RememberMeTTL = RememberMeDuration
	}
	if a.Lockout.Threshold <= 0 {
		a.Lockout.Threshold = LockoutThreshold
	}
	if a.Lockout.Duration <= 0 {
		a.Lockout.Duration = LockoutDuration
	}
	if a.DeviceLockDuration <= 0 {
		a.DeviceLockDuration = DeviceLockDuration
	}
	if a.MaxDevices <= 0 {
		a.MaxDevices = DefaultMaxDevices
	}
	if a.Hash.Algorithm == "" {
		a.Hash.Algorithm = "bcrypt"
	}
	if a.Hash.BcryptCost <= 0 {
		a.Hash.BcryptCost = DefaultBcryptCost
	}
	if a.Hash.Concurrency <= 0 {
		a.Hash.Concurrency = DefaultHashConcurrency
	}
	if a.StoreTimeout <= 0 {
		a.StoreTimeout = DefaultStoreTimeout
	}
	if c.Audit.BufferSize <= 0 {
		c.Audit.BufferSize = 256
	}
}
