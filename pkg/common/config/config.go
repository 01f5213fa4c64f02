package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type ServerConfig struct {
	Address string `json:"address" yaml:"address"`
}

type SecurityConfig struct {
	MaxBodySize int64 `json:"maxBodySize" yaml:"maxBodySize"` // 单位：字节
}

type TimeoutConfig struct {
	RequestTimeout int `json:"requestTimeout" yaml:"requestTimeout"` // 单位：秒
}

type CORSConfig struct {
	AllowAllOrigins  bool          `json:"allowAllOrigins" yaml:"allowAllOrigins"`
	AllowOrigins     []string      `json:"allowOrigins" yaml:"allowOrigins"`
	AllowMethods     []string      `json:"allowMethods" yaml:"allowMethods"`
	AllowHeaders     []string      `json:"allowHeaders" yaml:"allowHeaders"`
	ExposeHeaders    []string      `json:"exposeHeaders" yaml:"exposeHeaders"`
	AllowCredentials bool          `json:"allowCredentials" yaml:"allowCredentials"`
	MaxAge           time.Duration `json:"maxAge" yaml:"maxAge"`
	TrustedDomains   []string      `json:"trustedDomains" yaml:"trustedDomains"`
}

type MiddlewareConfig struct {
	Security SecurityConfig `json:"security" yaml:"security"`
	Timeout  TimeoutConfig  `json:"timeout" yaml:"timeout"`
	CORS     CORSConfig     `json:"cors" yaml:"cors"`
}

type DatabaseConfig struct {
	Driver      string `json:"driver" yaml:"driver"`           // mysql 或 sqlite
	Host        string `json:"host" yaml:"host"`               // 数据库主机地址
	Port        int    `json:"port" yaml:"port"`               // 数据库端口
	Username    string `json:"username" yaml:"username"`       // 数据库用户名
	Password    string `json:"password" yaml:"password"`       // 数据库密码
	DBName      string `json:"dbname" yaml:"dbname"`           // 数据库名称
	Path        string `json:"path" yaml:"path"`               // sqlite 文件路径
	UseUnixSock bool   `json:"useUnixSock" yaml:"useUnixSock"` // 是否使用Unix套接字连接
	MinPoolSize int    `json:"minPoolSize" yaml:"minPoolSize"` // 连接池最小连接数
	MaxPoolSize int    `json:"maxPoolSize" yaml:"maxPoolSize"` // 连接池最大连接数
	LogLevel    string `json:"logLevel" yaml:"logLevel"`       // GORM日志级别
}

type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Database   DatabaseConfig   `json:"database" yaml:"database"`
	Middleware MiddlewareConfig `json:"middleware" yaml:"middleware"`
	Env        string           `json:"env" yaml:"env"` // 环境标识
}

var defaultConfig = Config{
	Server: ServerConfig{
		Address: ":5000",
	},
	Database: DatabaseConfig{
		Driver:      DriverMySQL,
		Host:        "localhost",
		Port:        3306,
		Username:    "root",
		Password:    "root",
		DBName:      "foro_tematico",
		Path:        "foro_tematico.db",
		UseUnixSock: false,
		MinPoolSize: 5,
		MaxPoolSize: 50,
		LogLevel:    "warn",
	},
	Middleware: MiddlewareConfig{
		Security: SecurityConfig{
			MaxBodySize: 1 << 20, // 1MB
		},
		Timeout: TimeoutConfig{
			RequestTimeout: 15,
		},
		CORS: CORSConfig{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:    []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
			ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
			MaxAge:          12 * time.Hour,
		},
	},
	Env: "development",
}

// Default 返回默认配置的副本
func Default() *Config {
	c := defaultConfig
	return &c
}

// IsProd 判断当前是否生产环境
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// Load 加载配置（优先级：环境变量 > 配置文件 > 默认值）
func Load() *Config {
	config := defaultConfig

	configPath := getConfigPath()
	if configPath != "" {
		if err := loadFromFile(&config, configPath); err != nil {
			hlog.Warnf("Failed to load config file %s: %v", configPath, err)
		}
	}

	loadFromEnv(&config)

	return &config
}

// getConfigPath 获取配置文件路径
func getConfigPath() string {
	if path := os.Getenv("APP_CONFIG"); path != "" {
		return path
	}

	searchPaths := []string{
		"./config.json",
		"./config.yaml",
		"../config.json",
		"/etc/foro-tematico/config.json",
		"/etc/foro-tematico/config.yaml",
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadFromFile 按扩展名选择 JSON 或 YAML 解析
func loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

// loadFromEnv 从环境变量加载配置
func loadFromEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.Server.Address = v
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		config.Env = v
	}

	// 中间件配置
	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Middleware.Security.MaxBodySize = size
		}
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			config.Middleware.Timeout.RequestTimeout = timeout
		}
	}

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		config.Middleware.CORS.AllowOrigins = splitEnvList(v)
		config.Middleware.CORS.AllowAllOrigins = false
	}

	// 数据库配置
	if v := os.Getenv("DB_DRIVER"); v != "" {
		config.Database.Driver = strings.ToLower(v)
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		config.Database.Path = v
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.Host = v
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.Port = port
		}
	}

	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.Username = v
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}

	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.DBName = v
	}

	if v := os.Getenv("DB_SOCKET"); v != "" {
		config.Database.UseUnixSock = parseBool(v)
	}

	if v := os.Getenv("DB_MIN_POOL"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			config.Database.MinPoolSize = size
		}
	}

	if v := os.Getenv("DB_MAX_POOL"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			config.Database.MaxPoolSize = size
		}
	}

	if v := os.Getenv("DB_LOG_LEVEL"); v != "" {
		config.Database.LogLevel = strings.ToLower(v)
	}
}

// 分割环境变量列表（支持逗号分隔的字符串）
func splitEnvList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// 转换字符串为布尔值
func parseBool(value string) bool {
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

// DSN 根据驱动拼接连接串
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		// 外键约束在 sqlite 下默认关闭
		return c.Database.Path + "?_foreign_keys=on&_busy_timeout=5000"
	}

	charsetParam := "charset=utf8mb4&parseTime=True&loc=Local"

	if c.Database.UseUnixSock {
		return fmt.Sprintf("%s:%s@unix(%s)/%s?%s",
			c.Database.Username,
			c.Database.Password,
			c.Database.Host, // 这里host存储的是socket路径
			c.Database.DBName,
			charsetParam)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.Username,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		charsetParam)
}

func (c *Config) InitDB() (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}
	switch c.Database.LogLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	case "warn":
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch c.Database.Driver {
	case DriverMySQL, "":
		dialector = mysql.Open(c.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(c.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if c.Database.Driver == DriverSQLite {
		// sqlite 同一时间只允许一个写者
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(c.Database.MinPoolSize)
		sqlDB.SetMaxOpenConns(c.Database.MaxPoolSize)
	}

	return db, nil
}
