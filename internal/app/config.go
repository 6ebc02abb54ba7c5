package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProgramPath string // hcl program document
	ValuesPath  string // optional hcl parameter bindings
	RemotePath  string // optional hcl remote credentials

	BackendTag string
	Shots      int
	Wait       bool

	PollInterval time.Duration
	MaxPolls     int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProgramPath == "" {
		return nil, errors.New("ProgramPath is a required configuration field and cannot be empty")
	}
	if cfg.BackendTag == "" {
		return nil, errors.New("BackendTag is a required configuration field and cannot be empty")
	}
	if cfg.Shots < 0 {
		return nil, errors.New("Shots cannot be negative")
	}
	return &cfg, nil
}
