package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"

	"github.com/mono-c-glitch/Absolute-RSA-System/internal/config"
	"github.com/mono-c-glitch/Absolute-RSA-System/internal/keyfile"
	"github.com/mono-c-glitch/Absolute-RSA-System/internal/textfmt"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/version"
)

var (
	titleColor     = color.New(color.FgCyan, color.Bold)
	encryptedColor = color.New(color.FgYellow)
	decryptedColor = color.New(color.FgGreen)
)

func printVersion(w io.Writer, verbose bool) {
	fmt.Fprintln(w, "absrsa version: ", version.AbsrsaVersion, runtime.GOOS+"/"+runtime.GOARCH)
	if verbose {
		fmt.Fprintln(w, "  Commit: ", version.Commit)
		fmt.Fprintln(w, "  Built:  ", version.BuildDate)
		fmt.Fprintln(w, "  Go:     ", runtime.Version())
	}
}

func printKeys(w io.Writer, pub rsa.PublicKey, priv rsa.PrivateKey) {
	fmt.Fprintf(w, "Public (e,n): %s\n", textfmt.FormatPair(pub.E, pub.N))
	fmt.Fprintf(w, "Private (d,n): %s\n", textfmt.FormatPair(priv.D, priv.N))
}

func printCiphertext(w io.Writer, ciphertext []bigint.Int) {
	_, _ = encryptedColor.Fprintf(w, "🔒 Encrypted: %s\n", textfmt.FormatDigits(ciphertext))
}

func printPlaintext(w io.Writer, plaintext string) {
	_, _ = decryptedColor.Fprintf(w, "🔓 Decrypted: %s\n", plaintext)
}

// keyFlags holds key components given directly on the command line. They
// take precedence over a key file.
type keyFlags struct {
	e string
	n string
	d string
}

func (k *keyFlags) addPublicFlags(fs *pflag.FlagSet) {
	fs.StringVar(&k.e, "e", "", "Public exponent e. Decimal, or prefixed with 0x, 0o or 0b.")
	fs.StringVar(&k.n, "n", "", "Modulus n. Decimal, or prefixed with 0x, 0o or 0b.")
}

func (k *keyFlags) addPrivateFlags(fs *pflag.FlagSet) {
	fs.StringVar(&k.d, "d", "", "Private exponent d. Decimal, or prefixed with 0x, 0o or 0b.")
	if fs.Lookup("n") == nil {
		fs.StringVar(&k.n, "n", "", "Modulus n. Decimal, or prefixed with 0x, 0o or 0b.")
	}
}

func addKeyFileFlag(fs *pflag.FlagSet) {
	fs.StringP(
		config.KeyKeyFile,
		"k",
		"",
		"Location of a YAML key file written by `absrsa keygen --out`.",
	)
}

// publicKey returns the key from --e/--n, or from the configured key file.
func (k *keyFlags) publicKey(cfg *config.Config) (rsa.PublicKey, error) {
	if k.e != "" || k.n != "" {
		var result *multierror.Error
		e, err := parseComponent("e", k.e)
		if err != nil {
			result = multierror.Append(result, err)
		}
		n, err := parseComponent("n", k.n)
		if err != nil {
			result = multierror.Append(result, err)
		}
		if err := result.ErrorOrNil(); err != nil {
			return rsa.PublicKey{}, err
		}
		pub := rsa.PublicKey{E: e, N: n}
		return pub, pub.Validate()
	}

	if cfg.KeyFile == "" {
		return rsa.PublicKey{}, fmt.Errorf("a public key is required: pass --e and --n, or --key-file")
	}
	f, err := keyfile.Load(cfg.KeyFile)
	if err != nil {
		return rsa.PublicKey{}, err
	}
	pub, _ := f.Keys()
	return pub, nil
}

// privateKey returns the key from --d/--n, or from the configured key file.
func (k *keyFlags) privateKey(cfg *config.Config) (rsa.PrivateKey, error) {
	if k.d != "" || k.n != "" {
		var result *multierror.Error
		d, err := parseComponent("d", k.d)
		if err != nil {
			result = multierror.Append(result, err)
		}
		n, err := parseComponent("n", k.n)
		if err != nil {
			result = multierror.Append(result, err)
		}
		if err := result.ErrorOrNil(); err != nil {
			return rsa.PrivateKey{}, err
		}
		priv := rsa.PrivateKey{D: d, N: n}
		return priv, priv.Validate()
	}

	if cfg.KeyFile == "" {
		return rsa.PrivateKey{}, fmt.Errorf("a private key is required: pass --d and --n, or --key-file")
	}
	f, err := keyfile.Load(cfg.KeyFile)
	if err != nil {
		return rsa.PrivateKey{}, err
	}
	_, priv := f.Keys()
	return priv, nil
}

func parseComponent(name, value string) (bigint.Int, error) {
	if value == "" {
		return bigint.Zero(), fmt.Errorf("--%s is required", name)
	}
	x, err := bigint.Parse(value, 0)
	if err != nil {
		return bigint.Zero(), fmt.Errorf("invalid --%s: %w", name, err)
	}
	return x, nil
}
