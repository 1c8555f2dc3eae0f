package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  http:
    addr: 0.0.0.0:8000
    timeout: 1s
data:
  database:
    driver: mysql
    source: root:root@tcp(127.0.0.1:3306)/membership?parseTime=True
    max_idle_conns: 10
    max_open_conns: 100
    conn_max_lifetime: 1h
  redis:
    addr: 127.0.0.1:6379
    db: 0
client:
  payment_service:
    addr: 127.0.0.1:8100
billing:
  season_type: annual
  season_year: 2026
  sweep_page_size: 50
  order_expiry_minutes: 30
log:
  level: info
  format: json
  output: stdout
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "0.0.0.0:8000", c.Server.Http.Addr)
	assert.Equal(t, "mysql", c.Data.Database.Driver)
	assert.Equal(t, "127.0.0.1:6379", c.Data.Redis.Addr)
	assert.Equal(t, "127.0.0.1:8100", c.Client.PaymentService.Addr)
	assert.Equal(t, 2026, c.Billing.SeasonYear)
	assert.Equal(t, 50, c.Billing.SweepPageSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	// 缺少 redis 地址的配置在加载阶段就被拒绝
	path := writeTestConfig(t, `
server:
  http:
    addr: 0.0.0.0:8000
data:
  database:
    source: root:root@tcp(127.0.0.1:3306)/membership
client:
  payment_service:
    addr: 127.0.0.1:8100
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)
	base, err := Load(path)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Bootstrap)
	}{
		{"missing server addr", func(c *Bootstrap) { c.Server.Http.Addr = "" }},
		{"missing database source", func(c *Bootstrap) { c.Data.Database.Source = "" }},
		{"missing redis addr", func(c *Bootstrap) { c.Data.Redis.Addr = "" }},
		{"missing payment service addr", func(c *Bootstrap) { c.Client.PaymentService.Addr = "" }},
		{"negative sweep page size", func(c *Bootstrap) { c.Billing.SweepPageSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(path)
			require.NoError(t, err)
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, base.Validate())
}
