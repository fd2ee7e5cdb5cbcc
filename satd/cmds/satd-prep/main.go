package main

import (
	"github.com/satdlab/satdprep/golib/cmdline"
	"github.com/satdlab/satdprep/golib/logging"
	"github.com/satdlab/satdprep/satd/config"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CommonArgs are accepted by every command.
type CommonArgs struct {
	Config   string `arg:"--config" help:"YAML configuration file"`
	LogLevel string `arg:"--log-level" help:"debug, info, warn or error"`
	Verbose  bool   `arg:"-v,--verbose" help:"shorthand for --log-level debug"`
}

func (a CommonArgs) logger() (*zap.Logger, error) {
	switch {
	case a.Verbose:
		return logging.New(zapcore.DebugLevel), nil
	case a.LogLevel != "":
		return logging.NewFromString(a.LogLevel)
	default:
		return logging.New(zapcore.InfoLevel), nil
	}
}

func (a CommonArgs) config(fs afero.Fs) (*config.Config, error) {
	if a.Config == "" {
		return config.Default(), nil
	}
	return config.Load(fs, a.Config)
}

func main() {
	cmdline.MustDispatch(prepareCmd, cleanCmd, binarizeCmd)
}
