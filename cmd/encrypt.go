package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mono-c-glitch/Absolute-RSA-System/internal/config"
	"github.com/mono-c-glitch/Absolute-RSA-System/internal/textfmt"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

var (
	encryptMessage string
	encryptKeys    keyFlags
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "encrypt a message with a public key",
	Long: `Encrypt a message and print the ciphertext digits as a list.

The key is read from --e and --n, or from --key-file. With n=0 the
ciphertext is the list of the message's code points.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), configPath, cmd.Flags())
		if err != nil {
			return err
		}
		pub, err := encryptKeys.publicKey(cfg)
		if err != nil {
			return err
		}

		ciphertext, err := rsa.Encrypt(encryptMessage, pub)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), textfmt.FormatDigits(ciphertext))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVarP(
		&encryptMessage,
		"message",
		"m",
		"",
		"Message to encrypt.",
	)
	encryptKeys.addPublicFlags(encryptCmd.Flags())
	addKeyFileFlag(encryptCmd.Flags())
}
