package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Xixaus/go-siace/chemlink"
	"github.com/Xixaus/go-siace/serlink"
)

// tuning holds optional channel tuning loaded from --config. Empty fields
// leave the library defaults untouched. Durations are written as Go
// duration strings ("100ms", "5s").
type tuning struct {
	FileChannel struct {
		CommandFile      string `yaml:"command_file"`
		ResponseFile     string `yaml:"response_file"`
		RetryDelay       string `yaml:"retry_delay"`
		MaxRetries       int    `yaml:"max_retries"`
		MaxCommandNumber int    `yaml:"max_command_number"`
		ResetSettle      string `yaml:"reset_settle"`
	} `yaml:"file_channel"`

	Serial struct {
		BaudRate     int    `yaml:"baud_rate"`
		Prefix       string `yaml:"prefix"`
		Address      string `yaml:"address"`
		WriteSettle  string `yaml:"write_settle"`
		ReadInterval string `yaml:"read_interval"`
		WaitTimeout  string `yaml:"wait_timeout"`
	} `yaml:"serial"`
}

func loadTuning(path string) (*tuning, error) {
	t := &tuning{}
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse tuning file: %w", err)
	}

	return t, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("tuning field %s: %w", field, err)
	}

	return d, nil
}

func (t *tuning) chemlinkOptions() ([]chemlink.Option, error) {
	var opts []chemlink.Option
	fc := t.FileChannel

	if fc.CommandFile != "" {
		opts = append(opts, chemlink.WithCommandFileName(fc.CommandFile))
	}
	if fc.ResponseFile != "" {
		opts = append(opts, chemlink.WithResponseFileName(fc.ResponseFile))
	}
	if fc.RetryDelay != "" {
		d, err := parseDuration("file_channel.retry_delay", fc.RetryDelay)
		if err != nil {
			return nil, err
		}
		opts = append(opts, chemlink.WithRetryDelay(d))
	}
	if fc.MaxRetries > 0 {
		opts = append(opts, chemlink.WithMaxRetries(fc.MaxRetries))
	}
	if fc.MaxCommandNumber > 0 {
		opts = append(opts, chemlink.WithMaxCommandNumber(fc.MaxCommandNumber))
	}
	if fc.ResetSettle != "" {
		d, err := parseDuration("file_channel.reset_settle", fc.ResetSettle)
		if err != nil {
			return nil, err
		}
		opts = append(opts, chemlink.WithResetSettle(d))
	}

	return opts, nil
}

func (t *tuning) serlinkOptions() ([]serlink.SerialOption, error) {
	var opts []serlink.SerialOption
	s := t.Serial

	if s.BaudRate > 0 {
		opts = append(opts, serlink.WithBaudRate(s.BaudRate))
	}
	if s.Prefix != "" {
		opts = append(opts, serlink.WithPrefix(s.Prefix))
	}
	if s.Address != "" {
		opts = append(opts, serlink.WithAddress(s.Address))
	}
	if s.WriteSettle != "" {
		d, err := parseDuration("serial.write_settle", s.WriteSettle)
		if err != nil {
			return nil, err
		}
		opts = append(opts, serlink.WithWriteSettle(d))
	}
	if s.ReadInterval != "" {
		d, err := parseDuration("serial.read_interval", s.ReadInterval)
		if err != nil {
			return nil, err
		}
		opts = append(opts, serlink.WithReadInterval(d))
	}
	if s.WaitTimeout != "" {
		d, err := parseDuration("serial.wait_timeout", s.WaitTimeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, serlink.WithWaitTimeout(d))
	}

	return opts, nil
}
