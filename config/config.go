package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development | production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Workdir:  "/var/kioskd",
		Location: "Asia/Shanghai",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "kioskd",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/kioskd/kioskd.log",
	},
}

func (c *AppConfig) GetListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// LoadConfig reads the yaml config file and applies KIOSKD_* environment
// overrides. A missing file is not an error: defaults apply.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}

	setEnvString := func(name string, val *string) {
		if v := os.Getenv(name); v != "" {
			*val = v
		}
	}
	setEnvInt := func(name string, val *int) {
		if v := os.Getenv(name); v != "" {
			*val = cast.ToInt(v)
		}
	}
	setEnvBool := func(name string, val *bool) {
		if v := os.Getenv(name); v != "" {
			*val = cast.ToBool(v)
		}
	}

	setEnvString("KIOSKD_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvString("KIOSKD_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("KIOSKD_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvString("KIOSKD_WEB_HOST", &cfg.Web.Host)
	setEnvInt("KIOSKD_WEB_PORT", &cfg.Web.Port)

	setEnvString("KIOSKD_DB_TYPE", &cfg.Database.Type)
	setEnvString("KIOSKD_DB_HOST", &cfg.Database.Host)
	setEnvInt("KIOSKD_DB_PORT", &cfg.Database.Port)
	setEnvString("KIOSKD_DB_NAME", &cfg.Database.Name)
	setEnvString("KIOSKD_DB_USER", &cfg.Database.User)
	setEnvString("KIOSKD_DB_PWD", &cfg.Database.Passwd)
	setEnvBool("KIOSKD_DB_DEBUG", &cfg.Database.Debug)

	setEnvString("KIOSKD_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("KIOSKD_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvString("KIOSKD_LOGGER_FILENAME", &cfg.Logger.Filename)

	return &cfg
}
