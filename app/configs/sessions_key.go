package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	CSRFKey []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}
	if env.CSRFKey == "" {
		return nil, fmt.Errorf("CSRF_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}
	csrfKey, err := base64.URLEncoding.DecodeString(env.CSRFKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSRF_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}
	if len(csrfKey) != 32 {
		return nil, fmt.Errorf("CSRF_KEY has invalid length %d after decoding. Must be 32 bytes", len(csrfKey))
	}

	log.Println("✅ Session keys loaded and decoded successfully.")
	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
		CSRFKey: csrfKey,
	}, nil
}

// GenerateSessionKeys returns base64 encoded APP_AUTH_KEY, APP_ENC_KEY and
// CSRF_KEY lines ready to paste into a .env file.
func GenerateSessionKeys() (string, error) {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return "", fmt.Errorf("could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return "", fmt.Errorf("could not generate encryption key")
	}
	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return "", fmt.Errorf("could not generate csrf key")
	}

	return fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\nCSRF_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey),
		base64.URLEncoding.EncodeToString(csrfKey),
	), nil
}

func GenerateAndPrintSessionKeys(out io.Writer, envFilePath string) error {
	lines, err := GenerateSessionKeys()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "================================================")
	fmt.Fprint(out, lines)
	fmt.Fprintln(out, "================================================")

	if envFilePath == "" {
		return nil
	}

	fullPath, err := filepath.Abs(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", envFilePath, err)
	}

	if err := os.WriteFile(fullPath, []byte(lines), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", fullPath, err)
	}

	fmt.Fprintf(out, "Keys have been written to '%s'. Copy them into your .env file.\n", fullPath)
	fmt.Fprintln(out, "If you regenerate, existing user sessions will be invalidated.")
	return nil
}
