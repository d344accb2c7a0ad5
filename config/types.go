package config

import "time"

type AppConfig struct {
	ListenAddr string          `yaml:"listen_addr" env:"KESTREL_LISTEN_ADDR" env-default:"0.0.0.0:8080"`
	DBDriver   string          `yaml:"db_driver" env:"KESTREL_DB_DRIVER" env-default:"sqlite"`
	DBURL      string          `yaml:"db_url" env:"KESTREL_DB_URL" env-default:"data/kestrel.db"`
	AppEnv     string          `yaml:"app_env" env:"KESTREL_APP_ENV"`
	Feed       FeedConfig      `yaml:"feed"`
	Submit     SubmitConfig    `yaml:"submit"`
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Form       FormConfig      `yaml:"form"`
	Security   SecurityConfig  `yaml:"security"`
}

type FeedConfig struct {
	URL             string `yaml:"url" env:"KESTREL_FEED_URL"`
	TimeoutSec      int    `yaml:"timeout_sec" env:"KESTREL_FEED_TIMEOUT_SEC" env-default:"15"`
	RetryCount      int    `yaml:"retry_count" env:"KESTREL_FEED_RETRY_COUNT" env-default:"2"`
	CacheTTLSec     int    `yaml:"cache_ttl_sec" env:"KESTREL_FEED_CACHE_TTL_SEC" env-default:"60"`
	RefreshEnabled  bool   `yaml:"refresh_enabled" env:"KESTREL_FEED_REFRESH_ENABLED" env-default:"true"`
	RefreshSchedule string `yaml:"refresh_schedule" env:"KESTREL_FEED_REFRESH_SCHEDULE" env-default:"@every 5m"`
}

type SubmitConfig struct {
	URL        string `yaml:"url" env:"KESTREL_SUBMIT_URL"`
	TimeoutSec int    `yaml:"timeout_sec" env:"KESTREL_SUBMIT_TIMEOUT_SEC" env-default:"20"`
	RetryCount int    `yaml:"retry_count" env:"KESTREL_SUBMIT_RETRY_COUNT" env-default:"0"`
}

type DashboardConfig struct {
	ExportFilename string `yaml:"export_filename" env:"KESTREL_DASHBOARD_EXPORT_FILENAME" env-default:"incident-reports.csv"`
	FormPath       string `yaml:"form_path" env:"KESTREL_DASHBOARD_FORM_PATH" env-default:"/report-form"`
	ViewPath       string `yaml:"view_path" env:"KESTREL_DASHBOARD_VIEW_PATH" env-default:"/report-view"`
}

type FormConfig struct {
	DraftKeyPrefix string `yaml:"draft_key_prefix" env:"KESTREL_FORM_DRAFT_KEY_PREFIX" env-default:"incident-report-draft"`
}

type SecurityConfig struct {
	TrustedProxies []string `yaml:"trusted_proxies" env:"KESTREL_SECURITY_TRUSTED_PROXIES" env-separator:","`
}

func (c *FeedConfig) Timeout() time.Duration {
	if c == nil || c.TimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c *FeedConfig) CacheTTL() time.Duration {
	if c == nil || c.CacheTTLSec <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSec) * time.Second
}

func (c *SubmitConfig) Timeout() time.Duration {
	if c == nil || c.TimeoutSec <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}
