package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config bankctl 設定檔
type Config struct {
	LogFile  string   `yaml:"log_file"`
	LogLevel string   `yaml:"log_level"`
	Defaults Defaults `yaml:"defaults"`
	GRPC     GRPC     `yaml:"grpc"`
}

// Defaults 建立帳戶時未指定的參數，以字串保存避免浮點誤差
type Defaults struct {
	InterestRate   string `yaml:"interest_rate"`
	OverdraftLimit string `yaml:"overdraft_limit"`
}

// GRPC 服務端監聽地址與客戶端連線設定
type GRPC struct {
	Addr          string        `yaml:"addr"`
	DialTimeout   time.Duration `yaml:"dial_timeout"`
	KeepaliveTime time.Duration `yaml:"keepalive_time"`
}

// Default 未提供設定檔時使用的設定
func Default() Config {
	var cfg Config
	cfg.fillDefaults()
	return cfg
}

// Load 讀取 YAML 設定檔並補全預設值，path 為空時直接回傳預設設定
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.LogFile == "" {
		c.LogFile = "accounts.txt"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.Defaults.InterestRate == "" {
		c.Defaults.InterestRate = "0.02"
	}
	if c.Defaults.OverdraftLimit == "" {
		c.Defaults.OverdraftLimit = "500"
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":50051"
	}
	if c.GRPC.DialTimeout == 0 {
		c.GRPC.DialTimeout = 5 * time.Second
	}
	if c.GRPC.KeepaliveTime == 0 {
		c.GRPC.KeepaliveTime = 10 * time.Second
	}
}

// Rates 解析預設利率與透支額度
//
// 回傳值:
//
//	rate: decimal.Decimal - 儲蓄帳戶預設利率
//	limit: decimal.Decimal - 支票帳戶預設透支額度
//	err: error - 任一欄位無法解析時回傳
func (d Defaults) Rates() (rate, limit decimal.Decimal, err error) {
	if rate, err = decimal.NewFromString(strings.TrimSpace(d.InterestRate)); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("defaults.interest_rate %q: %w", d.InterestRate, err)
	}
	if limit, err = decimal.NewFromString(strings.TrimSpace(d.OverdraftLimit)); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("defaults.overdraft_limit %q: %w", d.OverdraftLimit, err)
	}
	return rate, limit, nil
}

// Level 將 log_level 轉成 slog.Level
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
