// Package keyfile reads and writes key pairs as YAML so that a pair made by
// `absrsa keygen --out` can be reused by later encrypt and decrypt runs.
//
// Integers are stored as quoted decimal strings because YAML numbers cannot
// hold values of arbitrary size.
package keyfile

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

// File is the on-disk form of a key pair.
type File struct {
	Bits    int        `yaml:"bits"`
	Public  PublicKey  `yaml:"public"`
	Private PrivateKey `yaml:"private"`
}

// PublicKey is the public section of a key file.
type PublicKey struct {
	E *bigint.Int `yaml:"e"`
	N *bigint.Int `yaml:"n"`
}

// PrivateKey is the private section of a key file. The primes are optional.
type PrivateKey struct {
	D *bigint.Int `yaml:"d"`
	N *bigint.Int `yaml:"n"`
	P *bigint.Int `yaml:"p,omitempty"`
	Q *bigint.Int `yaml:"q,omitempty"`
}

// New returns the key file for a generated pair.
func New(bits int, pub rsa.PublicKey, priv rsa.PrivateKey) *File {
	f := &File{
		Bits: bits,
		Public: PublicKey{
			E: ptr(pub.E),
			N: ptr(pub.N),
		},
		Private: PrivateKey{
			D: ptr(priv.D),
			N: ptr(priv.N),
		},
	}
	if !priv.P.IsZero() || !priv.Q.IsZero() {
		f.Private.P = ptr(priv.P)
		f.Private.Q = ptr(priv.Q)
	}
	return f
}

// Keys returns the pair held by the file. It must only be called on a file
// that passed validation, as Parse and Load guarantee.
func (f *File) Keys() (rsa.PublicKey, rsa.PrivateKey) {
	pub := rsa.PublicKey{E: *f.Public.E, N: *f.Public.N}
	priv := rsa.PrivateKey{D: *f.Private.D, N: *f.Private.N}
	if f.Private.P != nil {
		priv.P = *f.Private.P
	}
	if f.Private.Q != nil {
		priv.Q = *f.Private.Q
	}
	return pub, priv
}

func (f *File) validate() error {
	var result *multierror.Error

	if f.Bits < 0 {
		result = multierror.Append(result, fmt.Errorf("bits cannot be negative"))
	}

	if f.Public.E == nil {
		result = multierror.Append(result, fmt.Errorf("public.e is required"))
	}

	if f.Public.N == nil {
		result = multierror.Append(result, fmt.Errorf("public.n is required"))
	}

	if f.Private.D == nil {
		result = multierror.Append(result, fmt.Errorf("private.d is required"))
	}

	if f.Private.N == nil {
		result = multierror.Append(result, fmt.Errorf("private.n is required"))
	}

	if (f.Private.P == nil) != (f.Private.Q == nil) {
		result = multierror.Append(result, fmt.Errorf("private.p and private.q must be given together"))
	}

	// The remaining checks need every required field.
	if f.Public.E == nil || f.Public.N == nil || f.Private.D == nil || f.Private.N == nil {
		return result.ErrorOrNil()
	}

	if !f.Public.N.Equal(*f.Private.N) {
		result = multierror.Append(result, fmt.Errorf("public.n and private.n differ"))
	}

	pub, priv := f.Keys()
	if err := pub.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := priv.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if f.Private.P != nil && f.Private.Q != nil && !f.Private.P.Mul(*f.Private.Q).Equal(*f.Private.N) {
		result = multierror.Append(result, fmt.Errorf("private.p * private.q does not equal n"))
	}

	return result.ErrorOrNil()
}

// Dump generates the YAML form of the key file.
func (f *File) Dump() (string, error) {
	d, err := yaml.Marshal(f)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate YAML dump of key file")
	}

	return string(d), nil
}

// Parse reads a key file from YAML and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse key file")
	}

	if err := f.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid key file")
	}

	return &f, nil
}

// Load reads and parses the key file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read key file %q", path)
	}

	return Parse(data)
}

// Save writes the key file to path, readable only by the owner since it holds
// the private exponent.
func Save(path string, f *File) error {
	out, err := f.Dump()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(out), 0600); err != nil {
		return errors.Wrapf(err, "failed to write key file %q", path)
	}

	return nil
}

func ptr(x bigint.Int) *bigint.Int {
	return &x
}
