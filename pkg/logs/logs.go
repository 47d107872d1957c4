package logs

import (
	"bytes"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/component-base/featuregate"
	"k8s.io/component-base/logs"
	logsapi "k8s.io/component-base/logs/api/v1"

	_ "k8s.io/component-base/logs/json/register"
)

// absrsa follows the [Kubernetes Logging Conventions] and writes logs in
// [Kubernetes text logging format] by default. It does not use named levels;
// verbosity is an integer and the constants below name the ones this code
// uses. Errors and warnings go to stderr and Info messages to stdout, which
// keeps the program's own output (keys, ciphertext) easy to pipe while the
// diagnostics stay visible.
//
// The command output itself is not logging: keys, ciphertexts and recovered
// messages are printed with fmt by the cmd package.
//
// Further reading:
//  - [Kubernetes logging conventions](https://github.com/kubernetes/community/blob/master/contributors/devel/sig-instrumentation/logging.md)
//  - [Kubernetes text logging format](https://github.com/kubernetes/community/blob/master/contributors/devel/sig-instrumentation/logging.md#text-logging-format)
//  - [Examples of using k8s.io/component-base/logs](https://github.com/kubernetes/kubernetes/tree/master/staging/src/k8s.io/component-base/logs/example)

var (
	// Only the essential logging flags are shown in --help. The hidden
	// flags still work.
	visibleFlagNames = sets.New[string]("v", "vmodule", "logging-format")
	// This default logging configuration is updated with values from the
	// logging flags, even the hidden ones.
	configuration = logsapi.NewLoggingConfiguration()
	// Logging features are added to this feature gate, but the
	// feature-gates flag is hidden.
	features = featuregate.NewFeatureGate()
)

const (
	// Standard log verbosity levels.
	// Use these instead of integers in absrsa code.
	Info  = 0
	Debug = 1
	Trace = 2
)

func init() {
	runtime.Must(logsapi.AddFeatureGates(features))
	// Turn on ALPHA options to enable the split-stream logging options.
	runtime.Must(features.OverrideDefault(logsapi.LoggingAlphaOptions, true))
}

// AddFlags adds log related flags to the supplied flag set.
//
// The split-stream options are enabled by default, so that errors are logged
// to stderr and info to stdout.
func AddFlags(fs *pflag.FlagSet) {
	var tfs pflag.FlagSet
	logsapi.AddFlags(configuration, &tfs)
	features.AddFlag(&tfs)
	tfs.VisitAll(func(f *pflag.Flag) {
		if !visibleFlagNames.Has(f.Name) {
			_ = tfs.MarkHidden(f.Name)
		}

		// JSON logging is always available here because the BETA logging
		// features are enabled above.
		if f.Name == "logging-format" {
			f.Usage = `Sets the log format. Permitted formats: "json", "text".`
		}
		if f.Name == "log-text-split-stream" {
			f.DefValue = "true"
			runtime.Must(f.Value.Set("true"))
		}
		if f.Name == "log-json-split-stream" {
			f.DefValue = "true"
			runtime.Must(f.Value.Set("true"))
		}

		// Expose `--v` under the more common name `--log-level`, keeping the
		// `-v` shorthand.
		if f.Name == "v" {
			f.Name = "log-level"
			f.Shorthand = "v"
			f.Usage = fmt.Sprintf("%s. 0=Info, 1=Debug, 2=Trace. Use 3-10 for even greater detail. (default: 0)", f.Usage)
		}
	})
	fs.AddFlagSet(&tfs)
}

// Initialize uses k8s.io/component-base/logs to configure the global
// loggers log, slog and klog so that all of them write in the same format.
func Initialize() error {
	// This configures the global logger in klog *and* slog.
	logs.InitLogs()
	if err := logsapi.ValidateAndApply(configuration, features); err != nil {
		return fmt.Errorf("Error in logging configuration: %s", err)
	}

	// Thanks to logs.InitLogs, slog.Default now uses klog as its backend.
	// Route the standard library logger through it too, so that anything
	// written with log.Printf shares the format.
	stdLog := log.Default()
	stdLog.SetOutput(LogToSlogWriter{Slog: slog.Default(), Source: "absrsa"})

	return nil
}

// LogToSlogWriter adapts the standard library logger to slog, logging lines
// that mention an error or failure at error level.
type LogToSlogWriter struct {
	Slog   *slog.Logger
	Source string
}

func (w LogToSlogWriter) Write(p []byte) (n int, err error) {
	// log.Printf writes a newline at the end of the message, so we need to
	// trim it.
	p = bytes.TrimSuffix(p, []byte("\n"))

	message := string(p)
	if strings.Contains(message, "error") ||
		strings.Contains(message, "failed") {
		w.Slog.With("source", w.Source).Error(message)
	} else {
		w.Slog.With("source", w.Source).Info(message)
	}
	return len(p), nil
}
