package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mono-c-glitch/Absolute-RSA-System/internal/config"
	"github.com/mono-c-glitch/Absolute-RSA-System/internal/textfmt"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

var (
	decryptCiphertext string
	decryptKeys       keyFlags
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "decrypt ciphertext digits with a private key",
	Long: `Decrypt a list of ciphertext digits, as printed by "absrsa encrypt", and
print the recovered message. Bytes that do not form valid UTF-8 are shown
as the replacement character.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), configPath, cmd.Flags())
		if err != nil {
			return err
		}
		priv, err := decryptKeys.privateKey(cfg)
		if err != nil {
			return err
		}

		ciphertext, err := textfmt.ParseDigits(decryptCiphertext)
		if err != nil {
			return err
		}
		plaintext, err := rsa.Decrypt(ciphertext, priv)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plaintext)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVarP(
		&decryptCiphertext,
		"ciphertext",
		"c",
		"",
		`Ciphertext digits, for example "[123, 456]".`,
	)
	decryptKeys.addPrivateFlags(decryptCmd.Flags())
	addKeyFileFlag(decryptCmd.Flags())
}
