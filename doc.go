// Package saltbox implements the core of "SaltBox": an authenticated,
// multi-recipient, streaming public-key encryption format. A message is a
// header naming the format and an ephemeral sender key, one per-recipient
// key-wrapping box, and a sequence of independently authenticated payload
// chunks terminated by an empty sentinel chunk.
//
// Command-line argument parsing, key-material acquisition (hex decoding, key
// files, agents), and pretty-printing of parsed structures are all left to
// the caller. This package only implements Encrypt and Decrypt, plus the
// small amount of supporting machinery (key generation, header inspection)
// needed to call them.
package saltbox
