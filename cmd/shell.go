package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/mono-c-glitch/Absolute-RSA-System/internal/config"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/logs"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

const (
	shellTitle      = "🔐 Absolute RSA System (Any modulus)"
	shellNextPrompt = ". "
	shellExit       = "exit"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "interactive key generation, encryption and decryption",
	Long: `Start an interactive session which asks whether to generate keys or
enter e, n and d by hand, then encrypts and decrypts a message.

After each session the ". " prompt accepts "exit" to quit; any other input
starts another session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), configPath, cmd.Flags())
		if err != nil {
			return err
		}
		return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Generator())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shell struct {
	in  *bufio.Scanner
	out io.Writer
	gen *rsa.Generator
}

// runShell drives sessions until the user types exit, the input ends or ctx
// is cancelled. Errors inside a session are printed and do not end the shell.
func runShell(ctx context.Context, in io.Reader, out io.Writer, gen *rsa.Generator) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	s := &shell{in: scanner, out: out, gen: gen}
	log := klog.FromContext(ctx).WithName("shell")

	_, _ = titleColor.Fprintln(out, shellTitle)
	for {
		if err := s.session(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.V(logs.Debug).Info("session failed", "err", err)
			fmt.Fprintln(out)
			printError(out, err)
		}

		line, err := s.prompt(shellNextPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.EqualFold(line, shellExit) {
			return nil
		}
	}
}

func (s *shell) session(ctx context.Context) error {
	pub, priv, err := s.keys(ctx)
	if err != nil {
		return err
	}

	message, err := s.prompt("Message: ")
	if err != nil {
		return err
	}

	ciphertext, err := rsa.Encrypt(message, pub)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	printCiphertext(s.out, ciphertext)

	plaintext, err := rsa.Decrypt(ciphertext, priv)
	if err != nil {
		return err
	}
	printPlaintext(s.out, plaintext)
	return nil
}

func (s *shell) keys(ctx context.Context) (rsa.PublicKey, rsa.PrivateKey, error) {
	choice, err := s.prompt("Generate keys? (y/n): ")
	if err != nil {
		return rsa.PublicKey{}, rsa.PrivateKey{}, err
	}

	if strings.EqualFold(choice, "y") {
		answer, err := s.prompt(fmt.Sprintf("Key size (8-%d): ", s.maxBits()))
		if err != nil {
			return rsa.PublicKey{}, rsa.PrivateKey{}, err
		}
		bits, err := strconv.Atoi(answer)
		if err != nil {
			return rsa.PublicKey{}, rsa.PrivateKey{}, fmt.Errorf("invalid key size %q: %w", answer, err)
		}
		pub, priv, err := s.gen.GenerateKeys(ctx, bits)
		if err != nil {
			return rsa.PublicKey{}, rsa.PrivateKey{}, err
		}
		printKeys(s.out, pub, priv)
		return pub, priv, nil
	}

	var values [3]bigint.Int
	for i, name := range []string{"e", "n", "d"} {
		answer, err := s.prompt(name + ": ")
		if err != nil {
			return rsa.PublicKey{}, rsa.PrivateKey{}, err
		}
		if values[i], err = bigint.Parse(answer, 10); err != nil {
			return rsa.PublicKey{}, rsa.PrivateKey{}, fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	e, n, d := values[0], values[1], values[2]
	return rsa.PublicKey{E: e, N: n}, rsa.PrivateKey{D: d, N: n}, nil
}

// prompt writes label and returns the next input line without surrounding
// whitespace. It returns io.EOF once the input is exhausted.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *shell) maxBits() int {
	if s.gen != nil && s.gen.MaxBits > 0 {
		return s.gen.MaxBits
	}
	return rsa.MaxKeyBits
}
