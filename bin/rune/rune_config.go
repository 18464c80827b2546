// Copyright (c) 2024 Nicolas Dandanell
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/NicolasDandanell/rune-parser/compiler"
)

const (
	defaultConfigName = ".rune.toml"
	envPrefix         = "RUNE"

	keyAppendExtensions = "append_extensions"
	keyAggregateErrors  = "aggregate_errors"
	keyDebug            = "debug"
	keyNoColor          = "no_color"
)

type globalFlags struct {
	configPath string
}

func (g *globalFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&g.configPath, "config", "", "config file (default is $HOME/"+defaultConfigName+")")
	flags.BoolP("debug", "d", false, "log compiler passes")
	flags.Bool("no-color", false, "disable colored log output")
	flags.Bool("append-extensions", false, "append extensions to their original declarations")
	flags.Bool("aggregate-errors", false, "report every validation error instead of the first")
}

// bindFlags lets each setting come from a flag, a RUNE_ environment
// variable, or the config file, in that order.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		keyAppendExtensions: "append-extensions",
		keyAggregateErrors:  "aggregate-errors",
		keyDebug:            "debug",
		keyNoColor:          "no-color",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind flag --%s", flag)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return nil
}

type config struct {
	appendExtensions bool
	aggregateErrors  bool
	debug            bool
	noColor          bool
}

func (cfg *config) compileOptions(log logrus.FieldLogger) []compiler.CompileOption {
	return []compiler.CompileOption{
		compiler.WithAppendExtensions(cfg.appendExtensions),
		compiler.WithAggregateErrors(cfg.aggregateErrors),
		compiler.WithLogger(log),
	}
}

// loadConfig reads the config file at path. If path is empty the default
// file in the home directory is read, if it exists.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	explicit := path != ""
	if !explicit {
		home, err := homedir.Dir()
		if err == nil {
			path = filepath.Join(home, defaultConfigName)
		}
	}
	if path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, errors.Wrap(err, "config path")
		}
		if _, statErr := os.Stat(path); statErr == nil || explicit {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		}
	}
	return &config{
		appendExtensions: v.GetBool(keyAppendExtensions),
		aggregateErrors:  v.GetBool(keyAggregateErrors),
		debug:            v.GetBool(keyDebug),
		noColor:          v.GetBool(keyNoColor),
	}, nil
}

func setupLogger(log *logrus.Logger, out io.Writer, cfg *config) {
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    cfg.noColor,
		DisableTimestamp: true,
	})
	if cfg.debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}
