// Package rsa implements textbook RSA on top of the bigint, modular, prime
// and basen packages.
//
// A message is encoded as UTF-8, read as one big-endian integer, expanded
// into base-n digits and each digit is raised to the public exponent modulo
// n. Decryption reverses each step. There is no padding and the package
// accepts degenerate keys on purpose: a zero modulus selects an identity
// transform that passes code points and bytes through unchanged, and key
// sizes of 0 and 1 bit yield fixed placeholder keys. It is a teaching tool
// and must not be used to protect data.
package rsa
