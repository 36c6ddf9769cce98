package util

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const Name = "crownconsole"
const ConfigFileName = "config.yaml"
const EnvPrefix = "CROWN_"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host              string  `yaml:"host" env:"HOST"`
		SshPort           int     `yaml:"sshPort" env:"SSHPORT"`
		HttpPort          int     `yaml:"httpPort" env:"HTTPPORT"`
		ApiBase           string  `yaml:"apiBase" env:"API_BASE"`
		RequestTimeout    int     `yaml:"requestTimeout" env:"REQUEST_TIMEOUT"`
		RequestsPerSecond float64 `yaml:"requestsPerSecond" env:"REQUESTS_PER_SECOND"`
		Avatars           bool    `yaml:"avatars" env:"AVATARS"`
		AvatarBase        string  `yaml:"avatarBase" env:"AVATAR_BASE"`
		WithJournald      bool    `yaml:"withJournald" env:"WITH_JOURNALD"`
		WithFeed          bool    `yaml:"withFeed" env:"WITH_FEED"`
		FeedToken         string  `yaml:"feedToken" env:"FEED_TOKEN"`
		JournalPath       string  `yaml:"journalPath" env:"JOURNAL_PATH"`
		AuthorizedKeys    string  `yaml:"authorizedKeys" env:"AUTHORIZED_KEYS"`
	}
}

// Timeout returns the per-request timeout for backend calls.
func (c *AppConfig) Timeout() time.Duration {
	return time.Duration(c.Conf.RequestTimeout) * time.Second
}

func ReadConf() (*AppConfig, error) {
	configPath := ResolveFilePath(ConfigFileName)

	buf, err := os.ReadFile(configPath)
	if err != nil {
		Logger().Warnf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := filepath.Join(configDir, ConfigFileName)
			if writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644); writeErr != nil {
				Logger().Warnf("Could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				Logger().Infof("Created default config file at %s", userConfigPath)
			}
		}
	}

	return ParseConf(buf, os.Environ())
}

// ParseConf decodes a yaml document and applies CROWN_* overrides from environ.
func ParseConf(buf []byte, environ []string) (*AppConfig, error) {
	c := &AppConfig{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: env.ToMap(environ),
	}
	if err := env.ParseWithOptions(&c.Conf, opts); err != nil {
		return nil, fmt.Errorf("in environment: %w", err)
	}

	c.applyDefaults()
	return c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Conf.ApiBase == "" {
		c.Conf.ApiBase = "http://127.0.0.1:8080/api"
	}
	if c.Conf.AvatarBase == "" {
		c.Conf.AvatarBase = "https://mc-heads.net"
	}
	if c.Conf.SshPort == 0 {
		c.Conf.SshPort = 23234
	}
	if c.Conf.HttpPort == 0 {
		c.Conf.HttpPort = 9080
	}

	if c.Conf.RequestTimeout < 1 {
		c.Conf.RequestTimeout = 10
	} else if c.Conf.RequestTimeout > 120 {
		Logger().Warnf("requestTimeout %d exceeds maximum of 120, capping at 120", c.Conf.RequestTimeout)
		c.Conf.RequestTimeout = 120
	}

	if c.Conf.RequestsPerSecond <= 0 {
		c.Conf.RequestsPerSecond = 5
	}
}
