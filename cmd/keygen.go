package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mono-c-glitch/Absolute-RSA-System/internal/config"
	"github.com/mono-c-glitch/Absolute-RSA-System/internal/keyfile"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/prime"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

var keygenOut string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "generate an RSA key pair",
	Long: `Generate a key pair whose modulus has the requested number of bits.

A size of 0 produces the all-zero pair, which disables encryption, and a
size of 1 produces the placeholder pair n=1.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), configPath, cmd.Flags())
		if err != nil {
			return err
		}

		pub, priv, err := cfg.Generator().GenerateKeys(cmd.Context(), cfg.Bits)
		if err != nil {
			return err
		}
		printKeys(cmd.OutOrStdout(), pub, priv)

		if keygenOut == "" {
			return nil
		}
		if err := keyfile.Save(keygenOut, keyfile.New(cfg.Bits, pub, priv)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Key pair written to %s\n", keygenOut)
		return nil
	},
}

func addGenerationFlags(fs *pflag.FlagSet) {
	fs.IntP(
		config.KeyBits,
		"b",
		config.DefaultBits,
		fmt.Sprintf("Key size in bits, between 0 and --max-bits (%d by default).", rsa.MaxKeyBits),
	)
	fs.Int(
		config.KeyRounds,
		prime.DefaultRounds,
		"Miller-Rabin rounds per prime candidate.",
	)
	fs.Int(
		config.KeyMaxBits,
		rsa.MaxKeyBits,
		"Largest key size accepted.",
	)
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	addGenerationFlags(keygenCmd.Flags())
	keygenCmd.Flags().StringVarP(
		&keygenOut,
		"out",
		"o",
		"",
		"Write the key pair to this YAML file.",
	)
}
