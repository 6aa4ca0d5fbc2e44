// Copyright 2025 go-perflab Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings of a benchmark run and loads them with
// viper from flags, PERFLAB_* environment variables and an optional
// .perflab.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PERFLAB"

// Config describes one benchmark run.
type Config struct {
	// RotateDims and SmoothDims are the buffer sides each kind is run at.
	RotateDims []int `mapstructure:"rotate_dims"`
	SmoothDims []int `mapstructure:"smooth_dims"`

	// Repeats is how many times each (variant, dim) pair runs; the fastest
	// run is reported.
	Repeats int `mapstructure:"repeats"`

	// BlockSize adds a blocked_rotate_<n> variant when it differs from the
	// built-in tile side.
	BlockSize int `mapstructure:"block_size"`

	// Workers sizes the pool used by the parallel variants. 0 means
	// GOMAXPROCS, -1 disables the parallel variants.
	Workers int `mapstructure:"workers"`

	Seed uint64 `mapstructure:"seed"`

	// Variants restricts the run to these names. Baselines always run.
	Variants []string `mapstructure:"variants"`

	Verbose bool `mapstructure:"verbose"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the optional result stream.
type RedisConfig struct {
	Addr   string `mapstructure:"addr"`
	Stream string `mapstructure:"stream"`
}

// Default returns the built-in settings: the dimensions used by the
// classic performance lab driver.
func Default() Config {
	return Config{
		RotateDims: []int{64, 128, 256, 512, 1024},
		SmoothDims: []int{32, 64, 128, 256, 512},
		Repeats:    5,
		BlockSize:  16,
		Workers:    0,
		Seed:       1,
		Redis: RedisConfig{
			Stream: "perflab:results",
		},
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks that every field is usable.
func (c Config) Validate() error {
	if len(c.RotateDims) == 0 && len(c.SmoothDims) == 0 {
		return fmt.Errorf("%w: no dimensions to run", ErrInvalid)
	}
	for _, d := range c.RotateDims {
		if d < 1 {
			return fmt.Errorf("%w: rotate dim %d", ErrInvalid, d)
		}
	}
	for _, d := range c.SmoothDims {
		if d < 1 {
			return fmt.Errorf("%w: smooth dim %d", ErrInvalid, d)
		}
	}
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be >= 1, got %d", ErrInvalid, c.Repeats)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block size must be >= 1, got %d", ErrInvalid, c.BlockSize)
	}
	if c.Workers < -1 {
		return fmt.Errorf("%w: workers must be >= -1, got %d", ErrInvalid, c.Workers)
	}
	if c.Redis.Addr != "" && c.Redis.Stream == "" {
		return fmt.Errorf("%w: redis stream name is empty", ErrInvalid)
	}
	return nil
}

// SetDefaults registers Default() with v so that unset keys fall back to it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("rotate_dims", d.RotateDims)
	v.SetDefault("smooth_dims", d.SmoothDims)
	v.SetDefault("repeats", d.Repeats)
	v.SetDefault("block_size", d.BlockSize)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("variants", d.Variants)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.stream", d.Redis.Stream)
}

// Load reads a Config out of v. Environment variables PERFLAB_<KEY> (with
// dots replaced by underscores, e.g. PERFLAB_REDIS_ADDR) override file
// values. The result is validated.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ReadFile points v at path, or at .perflab.yaml in the working and home
// directories when path is empty, and reads it. A missing default file is
// not an error.
func ReadFile(v *viper.Viper, path, home string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".perflab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home != "" {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
