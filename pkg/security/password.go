package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/amaclone/storefront/pkg/config"
)

// ErrInvalidHash signals a stored password hash that is not a PHC-formatted argon2id string.
var ErrInvalidHash = errors.New("invalid argon2id hash")

const hashPrefix = "$argon2id$v="

var b64 = base64.RawStdEncoding

// cost holds the tunables written into every hash so verification never depends on config.
type cost struct {
	memoryKB uint32
	passes   uint32
	threads  uint8
}

// HashPassword derives an argon2id key for password and returns it in PHC string form:
// $argon2id$v=19$m=<kb>,t=<passes>,p=<threads>$<salt>$<key>.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	c := cost{
		memoryKB: uint32(within(cfg.ArgonMemoryKB, 8, 512*1024)),
		passes:   uint32(within(cfg.ArgonTime, 1, 10)),
		threads:  uint8(within(cfg.ArgonParallelism, 1, 255)),
	}
	salt := make([]byte, within(cfg.ArgonSaltLen, 8, 64))
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, c.passes, c.memoryKB, c.threads, uint32(within(cfg.ArgonKeyLen, 16, 64)))

	return fmt.Sprintf("%s%d$m=%d,t=%d,p=%d$%s$%s",
		hashPrefix, argon2.Version, c.memoryKB, c.passes, c.threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// VerifyPassword reports whether password derives the key stored in encoded.
func VerifyPassword(password, encoded string) (bool, error) {
	c, salt, want, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, c.passes, c.memoryKB, c.threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

func parseHash(encoded string) (cost, []byte, []byte, error) {
	if !strings.HasPrefix(encoded, hashPrefix) {
		return cost{}, nil, nil, ErrInvalidHash
	}
	fields := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	if len(fields) != 5 {
		return cost{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[1], "v=%d", &version); err != nil || version != argon2.Version {
		return cost{}, nil, nil, ErrInvalidHash
	}
	var c cost
	if _, err := fmt.Sscanf(fields[2], "m=%d,t=%d,p=%d", &c.memoryKB, &c.passes, &c.threads); err != nil {
		return cost{}, nil, nil, ErrInvalidHash
	}
	if c.memoryKB == 0 || c.passes == 0 || c.threads == 0 {
		return cost{}, nil, nil, ErrInvalidHash
	}

	salt, err := b64.DecodeString(fields[3])
	if err != nil || len(salt) == 0 {
		return cost{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(fields[4])
	if err != nil || len(key) == 0 {
		return cost{}, nil, nil, ErrInvalidHash
	}
	return c, salt, key, nil
}

func within(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
