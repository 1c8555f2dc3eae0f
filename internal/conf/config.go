package conf

import (
	"fmt"
)

type Bootstrap struct {
	Server  *Server  `yaml:"server" json:"server"`
	Data    *Data    `yaml:"data" json:"data"`
	Client  *Client  `yaml:"client" json:"client"`
	Billing *Billing `yaml:"billing" json:"billing"`
	Log     *Log     `yaml:"log" json:"log"`
}

type Server struct {
	Http struct {
		Addr    string `yaml:"addr" json:"addr"`
		Timeout string `yaml:"timeout" json:"timeout"`
	} `yaml:"http" json:"http"`
}

type Data struct {
	Database struct {
		Driver          string `yaml:"driver" json:"driver"`
		Source          string `yaml:"source" json:"source"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
	} `yaml:"database" json:"database"`
	Redis struct {
		Addr         string `yaml:"addr" json:"addr"`
		Password     string `yaml:"password" json:"password"`
		Db           int32  `yaml:"db" json:"db"`
		ReadTimeout  string `yaml:"read_timeout" json:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout" json:"write_timeout"`
	} `yaml:"redis" json:"redis"`
}

type Client struct {
	PaymentService *PaymentService `yaml:"payment_service" json:"payment_service"`
}

type PaymentService struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Billing 计费相关配置
type Billing struct {
	// SeasonType 赛季类型 (annual/summer/winter)
	SeasonType string `yaml:"season_type" json:"season_type"`
	// SeasonYear 当前计费赛季年份, 0 表示使用当前自然年
	SeasonYear int `yaml:"season_year" json:"season_year"`
	// ReturnURL 支付完成后的跳转地址
	ReturnURL string `yaml:"return_url" json:"return_url"`
	// SweepPageSize 夜间批量对账时每页处理的家庭数
	SweepPageSize int `yaml:"sweep_page_size" json:"sweep_page_size"`
	// OrderExpiryMinutes 未支付订单的关闭时限(分钟)
	OrderExpiryMinutes int `yaml:"order_expiry_minutes" json:"order_expiry_minutes"`
}

type Log struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	Output     string `yaml:"output" json:"output"`
	FilePath   string `yaml:"file_path" json:"file_path"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Validate validates the configuration
func (b *Bootstrap) Validate() error {
	if b.Server == nil {
		return fmt.Errorf("server configuration is required")
	}
	if b.Server.Http.Addr == "" {
		return fmt.Errorf("server.http.addr is required")
	}
	if b.Data == nil {
		return fmt.Errorf("data configuration is required")
	}
	if b.Data.Database.Source == "" {
		return fmt.Errorf("data.database.source is required")
	}
	if b.Data.Redis.Addr == "" {
		return fmt.Errorf("data.redis.addr is required")
	}
	if b.Client == nil || b.Client.PaymentService == nil || b.Client.PaymentService.Addr == "" {
		return fmt.Errorf("client.payment_service.addr is required")
	}
	if b.Billing != nil && b.Billing.SweepPageSize < 0 {
		return fmt.Errorf("billing.sweep_page_size must not be negative")
	}
	return nil
}
