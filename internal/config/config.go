package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort     = 8080
	defaultDatabase = "personnel_empowerment"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		StaticDir      string   `yaml:"staticDir"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Questions struct {
		Company  string   `yaml:"company"`
		Count    int      `yaml:"count"`
		Fallback []string `yaml:"fallback"`
	} `yaml:"questions"`

	Sentiment struct {
		Workers int `yaml:"workers"`
	} `yaml:"sentiment"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load reads the yaml config file, then applies env overrides and
// defaults. A missing file is not an error when env vars cover the
// required settings.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Env overrides keep secrets out of the yaml file.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = defaultDatabase
	}
}
