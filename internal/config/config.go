package config

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// 用于管理应用配置

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Upload    UploadConfig    `mapstructure:"upload"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	TrustedProxies string `mapstructure:"trusted_proxies"` // 逗号、分号或空白分隔的 IP/CIDR，空值表示不信任任何代理
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
	Seed     bool   `mapstructure:"seed"` // 空库时写入示例客户与线索
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type UploadConfig struct {
	MaxRequestBodyMB   int  `mapstructure:"max_request_body_mb"` // 普通接口请求体上限
	MaxUploadBodyMB    int  `mapstructure:"max_upload_body_mb"`  // 上传接口请求体上限
	EnforceContentType bool `mapstructure:"enforce_content_type"`
	LockTimeoutSeconds int  `mapstructure:"lock_timeout_seconds"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	log.Info().Msg("✅ 配置加载成功")
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 设置默认值
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", "")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/image_management.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "image_management")
	v.SetDefault("database.ssl", false)
	v.SetDefault("database.seed", true)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "image_mgmt")
	v.SetDefault("upload.max_request_body_mb", 2)
	v.SetDefault("upload.max_upload_body_mb", 80)
	v.SetDefault("upload.enforce_content_type", true)
	v.SetDefault("upload.lock_timeout_seconds", 10)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.upload_rps", 5)
	v.SetDefault("rate_limit.upload_burst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Warn().Msg("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			log.Fatal().Err(err).Msg("❌ 读取配置文件失败")
		}
	}

	// 配置环境变量覆盖
	// 规则：所有环境变量必须以 IMAGE_MGMT_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 IMAGE_MGMT_SERVER_PORT
	v.SetEnvPrefix("IMAGE_MGMT")

	// 允许自动查找环境变量
	v.AutomaticEnv()

	// 将 key 中的 "." 替换为 "_"，server.port 才能匹配 SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	// 加写锁，防止并发重载时的竞争
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Error().Err(err).Msg("❌ 配置解析失败")
		return
	}

	normalize(&tempConfig)

	// 原子替换全局配置
	appConfig.Store(&tempConfig)
	log.Debug().Msg("✅ 配置已更新")
}

// normalize 修正明显非法的取值，避免运行期出现 0 超时或 0 上限
func normalize(c *Config) {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		log.Warn().Str("mode", c.Server.Mode).Msg("⚠️ 未知的 server.mode，回退为 debug")
		c.Server.Mode = "debug"
	}
	if c.Upload.MaxRequestBodyMB <= 0 {
		c.Upload.MaxRequestBodyMB = 2
	}
	if c.Upload.MaxUploadBodyMB <= 0 {
		c.Upload.MaxUploadBodyMB = 80
	}
	if c.Upload.LockTimeoutSeconds <= 0 {
		c.Upload.LockTimeoutSeconds = 10
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "image_mgmt"
	}
}

// Set 直接替换当前配置快照，供测试和嵌入场景使用
func Set(c Config) {
	configMu.Lock()
	defer configMu.Unlock()
	normalize(&c)
	appConfig.Store(&c)
}
