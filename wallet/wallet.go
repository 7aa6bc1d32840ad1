// Package wallet owns the client's signing identity: an ed25519
// keypair whose public key is projected to the fixed-width hex address
// the ledger knows the account by.
package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrNoWalletProvider is returned when no key material is available at
// the configured location. Connecting without a provider is the one
// failure connect() can report before ever touching the network.
var ErrNoWalletProvider = errors.New("no wallet provider available")

var ErrUnsupportedKey = errors.New("unsupported private key length")

// Wallet represents a user's wallet with a private key and the address
// derived from it.
type Wallet struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	address    string
}

// New generates a fresh wallet.
func New() (*Wallet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		privateKey: priv,
		publicKey:  pub,
		address:    DeriveAddress(pub),
	}, nil
}

// Load reads a hex-encoded key file. A missing file means there is no
// wallet provider on this machine, not a transport problem.
func Load(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoWalletProvider
		}
		return nil, err
	}
	return FromHex(string(data))
}

// FromHex builds a wallet from a hex private key string. Accepts a
// 32-byte seed, a full 64-byte ed25519 key, or longer DER-style blobs
// whose last 32 bytes are the seed.
func FromHex(s string) (*Wallet, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(raw) < ed25519.SeedSize {
		return nil, ErrUnsupportedKey
	}
	seed := raw[len(raw)-ed25519.SeedSize:]
	if len(raw) == ed25519.PrivateKeySize {
		seed = raw[:ed25519.SeedSize]
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &Wallet{
		privateKey: priv,
		publicKey:  pub,
		address:    DeriveAddress(pub),
	}, nil
}

// SaveSeed writes the wallet seed as hex, readable only by the owner.
func (w *Wallet) SaveSeed(path string) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(w.privateKey.Seed())), 0o600)
}

// Address returns the wallet's ledger identity.
func (w *Wallet) Address() string {
	return w.address
}

// PublicKeyHex returns the hex encoding of the wallet's public key,
// sent alongside signatures so the ledger can check it against the
// caller address.
func (w *Wallet) PublicKeyHex() string {
	return hex.EncodeToString(w.publicKey)
}

// Sign signs an arbitrary payload and returns the hex signature.
func (w *Wallet) Sign(payload []byte) string {
	return hex.EncodeToString(ed25519.Sign(w.privateKey, payload))
}

// DeriveAddress maps a public key to its ledger address: the last 20
// bytes of the Keccak-256 digest, "0x"-prefixed lowercase hex.
func DeriveAddress(pub ed25519.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub)
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[len(sum)-20:])
}

// Verify checks a hex signature produced by Sign against a hex public
// key. Used by the ledger side of the contract.
func Verify(pubHex string, payload []byte, sigHex string) bool {
	pub, err := hex.DecodeString(pubHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), payload, sig)
}
