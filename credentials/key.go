// Package credentials implements service account authentication for the
// Google Sheets API: loading a service account key file, minting signed
// JWT bearer assertions, exchanging them for access tokens and caching the
// current token across concurrent callers.
package credentials

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"strings"
)

// ServiceAccountKey is the parsed form of a Google service account key file.
// It is immutable once loaded.
type ServiceAccountKey struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`

	key *rsa.PrivateKey
}

// Load reads and parses a service account key file. The file is read exactly
// once; Load performs no network access.
func Load(path string) (*ServiceAccountKey, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(bytes)
}

// Parse decodes a service account key document. It fails with a ConfigError
// if the document is not well-formed JSON, with a MissingFieldError naming
// the first absent required field, and with a KeyFormatError if the private
// key cannot be decoded into an RSA signing key.
func Parse(bytes []byte) (*ServiceAccountKey, error) {
	k := ServiceAccountKey{}
	if err := json.Unmarshal(bytes, &k); err != nil {
		return nil, &ConfigError{Err: err}
	}

	fields := []struct {
		name  string
		value string
	}{
		{"client_email", k.ClientEmail},
		{"private_key", k.PrivateKey},
		{"token_uri", k.TokenURI},
	}

	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return nil, &MissingFieldError{Field: field.name}
		}
	}

	key, err := parsePrivateKey(k.PrivateKey)
	if err != nil {
		return nil, err
	}

	k.key = key

	return &k, nil
}

// parsePrivateKey decodes a PEM encoded RSA private key, accepting both the
// PKCS#8 encoding Google issues and the older PKCS#1 encoding.
func parsePrivateKey(encoded string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(strings.TrimSpace(encoded)))
	if block == nil {
		return nil, &KeyFormatError{Reason: "not PEM encoded"}
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		if rsaKey, ok := key.(*rsa.PrivateKey); ok {
			return rsaKey, nil
		}

		return nil, &KeyFormatError{Reason: "not an RSA key"}
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	} else {
		return nil, &KeyFormatError{Reason: "undecodable key material", Err: err}
	}
}
