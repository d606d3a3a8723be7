package config

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"os"
	"strings"
	"time"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	LogLevel string `yaml:"logLevel"`
}

type RedisConfig struct {
	Addr            string        `yaml:"addr"`
	Password        string        `yaml:"password"`
	Database        int           `yaml:"database"`
	ProductCacheTTL time.Duration `yaml:"productCacheTTL"`
}

type JWTConfig struct {
	PrivateKeyPath string        `yaml:"privateKeyPath"`
	PublicKeyPath  string        `yaml:"publicKeyPath"`
	TTL            time.Duration `yaml:"ttl"`
}

type BillingConfig struct {
	SecretKey      string        `yaml:"secretKey"`
	DefaultCountry string        `yaml:"defaultCountry"`
	CreateTimeout  time.Duration `yaml:"createTimeout"`
	MirrorQueue    string        `yaml:"mirrorQueue"`
	MirrorQueueKey string        `yaml:"mirrorQueueKey"`
	MirrorBuffer   int           `yaml:"mirrorBuffer"`
	MirrorWorkers  int           `yaml:"mirrorWorkers"`
	MirrorTimeout  time.Duration `yaml:"mirrorTimeout"`
	// nil表示未設定，0表示不重試
	MirrorRetries *uint64       `yaml:"mirrorRetries"`
	MirrorBackoff time.Duration `yaml:"mirrorBackoff"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Billing  BillingConfig  `yaml:"billing"`
	Log      LogConfig      `yaml:"log"`
}

func LoadConfig(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("decode %s: %w", filename, err)
	}

	config.applyEnv()
	config.applyDefaults()
	return config, nil
}

// 機密資料可由環境變數覆蓋設定檔
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("STRIPE_KEY"); v != "" {
		c.Billing.SecretKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Redis.ProductCacheTTL <= 0 {
		c.Redis.ProductCacheTTL = 10 * time.Minute
	}
	if c.JWT.PrivateKeyPath == "" {
		c.JWT.PrivateKeyPath = "jwt/private_key.pem"
	}
	if c.JWT.PublicKeyPath == "" {
		c.JWT.PublicKeyPath = "jwt/public_key.pem"
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = 24 * time.Hour
	}
	if c.Billing.DefaultCountry == "" {
		c.Billing.DefaultCountry = "FR"
	}
	if c.Billing.CreateTimeout <= 0 {
		c.Billing.CreateTimeout = 5 * time.Second
	}
	if c.Billing.MirrorQueue == "" {
		c.Billing.MirrorQueue = "memory"
	}
	if c.Billing.MirrorQueueKey == "" {
		c.Billing.MirrorQueueKey = "billing:mirror"
	}
	if c.Billing.MirrorBuffer <= 0 {
		c.Billing.MirrorBuffer = 256
	}
	if c.Billing.MirrorWorkers <= 0 {
		c.Billing.MirrorWorkers = 2
	}
	if c.Billing.MirrorTimeout <= 0 {
		c.Billing.MirrorTimeout = 10 * time.Second
	}
	if c.Billing.MirrorRetries == nil {
		retries := uint64(5)
		c.Billing.MirrorRetries = &retries
	}
	if c.Billing.MirrorBackoff <= 0 {
		c.Billing.MirrorBackoff = time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// DSN 依資料庫種類組出連線字串
func (d DatabaseConfig) DSN() (string, error) {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.Username,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		), nil
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			d.Host,
			d.Username,
			d.Password,
			d.Database,
			d.Port,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func SetupDatabaseConnection(config Config) (*gorm.DB, error) {
	dsn, err := config.Database.DSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	if config.Database.Driver == "postgres" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(config.Database.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func SetupRedisConnection(ctx context.Context, config Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Database,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Redis.Addr, err)
	}

	return redisClient, nil
}
