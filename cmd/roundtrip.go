package cmd

import (
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/mono-c-glitch/Absolute-RSA-System/internal/config"
	"github.com/mono-c-glitch/Absolute-RSA-System/internal/keyfile"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

var (
	roundtripMessage string
	roundtripKeys    keyFlags
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "encrypt a message and decrypt it again",
	Long: `Encrypt a message and decrypt the result, printing the ciphertext and the
recovered plaintext.

Keys come from --e, --n and --d when any of them is given, then from an
explicit --bits, then from --key-file, and are otherwise generated with the
configured key size.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), configPath, cmd.Flags())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var (
			pub  rsa.PublicKey
			priv rsa.PrivateKey
		)
		switch {
		case roundtripKeys.e != "" || roundtripKeys.n != "" || roundtripKeys.d != "":
			pub, priv, err = roundtripKeys.keyPair()
		case cfg.KeyFile != "" && !cmd.Flags().Changed(config.KeyBits):
			var f *keyfile.File
			if f, err = keyfile.Load(cfg.KeyFile); err == nil {
				pub, priv = f.Keys()
			}
		default:
			pub, priv, err = cfg.Generator().GenerateKeys(cmd.Context(), cfg.Bits)
			if err == nil {
				printKeys(out, pub, priv)
			}
		}
		if err != nil {
			return err
		}

		_, _ = titleColor.Fprintf(out, "Message: %s\n", roundtripMessage)
		ciphertext, err := rsa.Encrypt(roundtripMessage, pub)
		if err != nil {
			return err
		}
		printCiphertext(out, ciphertext)

		plaintext, err := rsa.Decrypt(ciphertext, priv)
		if err != nil {
			return err
		}
		printPlaintext(out, plaintext)
		return nil
	},
}

// keyPair builds both keys from --e, --n and --d, all of which are required.
func (k *keyFlags) keyPair() (rsa.PublicKey, rsa.PrivateKey, error) {
	var result *multierror.Error
	e, err := parseComponent("e", k.e)
	if err != nil {
		result = multierror.Append(result, err)
	}
	n, err := parseComponent("n", k.n)
	if err != nil {
		result = multierror.Append(result, err)
	}
	d, err := parseComponent("d", k.d)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return rsa.PublicKey{}, rsa.PrivateKey{}, err
	}

	pub := rsa.PublicKey{E: e, N: n}
	priv := rsa.PrivateKey{D: d, N: n}
	result = nil
	if err := pub.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := priv.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return pub, priv, result.ErrorOrNil()
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
	roundtripCmd.Flags().StringVarP(
		&roundtripMessage,
		"message",
		"m",
		"",
		"Message to encrypt and decrypt.",
	)
	addGenerationFlags(roundtripCmd.Flags())
	roundtripKeys.addPublicFlags(roundtripCmd.Flags())
	roundtripKeys.addPrivateFlags(roundtripCmd.Flags())
	addKeyFileFlag(roundtripCmd.Flags())
}
