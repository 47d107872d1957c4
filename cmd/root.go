package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/logs"
)

// configPath is the --config flag shared by every command.
var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "absrsa",
	Short: "Textbook RSA from first principles 🔐",
	Long: `absrsa generates RSA key pairs and encrypts and decrypts messages
with textbook RSA, using its own arbitrary-precision arithmetic.

Any modulus is accepted, including degenerate ones: a key of 0 bits
disables encryption altogether. There is no padding; this is a teaching
tool, not a way to protect data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setFlagsFromEnv("ABSRSA_", cmd.Flags())
		setFlagsFromEnv("ABSRSA_", cmd.InheritedFlags())
		return logs.Initialize()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"Config file location, default is `absrsa.yaml` in the current working directory or /etc/absrsa/.",
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logs.AddFlags(rootCmd.PersistentFlags())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func setFlagsFromEnv(prefix string, fs *pflag.FlagSet) {
	set := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = true
	})
	fs.VisitAll(func(f *pflag.Flag) {
		// ignore flags set from the commandline
		if set[f.Name] {
			return
		}
		// remove trailing _ to reduce common errors with the prefix, i.e. people setting it to MY_PROG_
		cleanPrefix := strings.TrimSuffix(prefix, "_")
		name := fmt.Sprintf("%s_%s", cleanPrefix, strings.Replace(strings.ToUpper(f.Name), "-", "_", -1))
		if e, ok := os.LookupEnv(name); ok {
			_ = fs.Set(f.Name, e)
		}
	})
}

var errorColor = color.New(color.FgRed, color.Bold)

func printError(w io.Writer, err error) {
	_, _ = errorColor.Fprintf(w, "❌ Error: %s\n", err)
}
