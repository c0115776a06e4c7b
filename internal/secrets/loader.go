// Package secrets resolves sensitive configuration values, such as the
// generation service API key, from files or inline config.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret value comes from.
type Source struct {
	// Name identifies the secret in error messages.
	Name string
	// Value is an inline secret provided via configuration or flags.
	Value string
	// File points to a file holding the secret. It takes precedence over
	// Value when both are set.
	File string
}

// Load resolves and trims the secret value. An error is returned when
// neither File nor Value yields a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	value := src.Value
	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
