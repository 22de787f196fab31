package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/logging"
	"github.com/backmassage/vidsqueeze/internal/naming"
	"github.com/backmassage/vidsqueeze/internal/probe"
	"github.com/backmassage/vidsqueeze/internal/proc"
)

// Env carries the collaborators shared by every file in a batch.
type Env struct {
	Cfg      *config.Config
	Log      *logging.Logger
	Prober   *probe.Prober
	FFmpeg   *proc.Runner
	Resolver *naming.Resolver

	Now      func() time.Time // Output timestamp clock.
	Out      io.Writer        // Summary and tables. Default: os.Stdout.
	Progress io.Writer        // Progress bar. Default: os.Stderr.
}

// NewEnv wires an Env from cfg.
func NewEnv(cfg *config.Config, log *logging.Logger) *Env {
	return &Env{
		Cfg:      cfg,
		Log:      log,
		Prober:   probe.NewProber(cfg.FFprobeBin, probe.Format(cfg.ProbeFormat)),
		FFmpeg:   proc.NewRunner(cfg.FFmpegBin),
		Resolver: naming.NewResolver(),
		Now:      time.Now,
		Out:      os.Stdout,
		Progress: os.Stderr,
	}
}
