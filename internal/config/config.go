package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Global
		Database
		Demo
		Audit
		Maintenance
		Log
		Node
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		EmbeddedPath string        // SQLite file used by the embedded durable tier
		ExternalDSN  string        // Postgres DSN for the external durable tier (empty = not configured)
		StartupWait  time.Duration // How long to wait for the embedded store before falling through
	}
	Demo struct {
		Enabled bool // Seed the sample library on first start
	}
	Audit struct {
		Dir string // Directory for maintenance audit events
	}
	Maintenance struct {
		SyncSchedule string // Cron schedule for the permission sweep; empty disables it
	}
	Log struct {
		Level string // logrus level name: debug, info, warn, error
	}
	Node struct {
		Name string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_external_dsn", "")
	v.SetDefault("database_startup_wait", "30s")
	v.SetDefault("demo_mode", false)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("maintenance_sync_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("log_level", "info")
	v.SetDefault("node_name", DefaultNodeName)

	return &Config{
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			EmbeddedPath: v.GetString("DATABASE_PATH"),
			ExternalDSN:  v.GetString("DATABASE_EXTERNAL_DSN"),
			StartupWait:  v.GetDuration("DATABASE_STARTUP_WAIT"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Maintenance: Maintenance{
			SyncSchedule: v.GetString("MAINTENANCE_SYNC_SCHEDULE"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
		Node: Node{
			Name: v.GetString("NODE_NAME"),
		},
	}
}
