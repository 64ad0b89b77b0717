package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"
)

const (
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// normalizeFormat validates a configured data format, defaulting to JSON.
func normalizeFormat(value string) (string, error) {
	if value == "" {
		return defaultDataFormat, nil
	}
	format := strings.ToLower(value)
	switch format {
	case formatJSON, formatYAML, formatTOML:
		return format, nil
	}
	return "", fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", value)
}

// ensureDataFile makes sure the directory and file for path exist, creating
// an empty file (and its checksum sidecar) when absent.
func ensureDataFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		f, createErr := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
		if createErr != nil {
			return fmt.Errorf("failed to create data file %s: %w", path, createErr)
		}
		_ = f.Close()
		if err := os.WriteFile(path+checksumSuffix, []byte(calculateChecksum(nil)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write initial checksum file for %s: %v\n", path, err)
		}
	}
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// readDataFile reads a data file and verifies it against its checksum
// sidecar when one exists. A missing file yields nil data and no error.
func readDataFile(path string) ([]byte, error) {
	checksumPath := path + checksumSuffix

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	if _, err := os.Stat(checksumPath); err == nil {
		expectedBytes, readErr := os.ReadFile(checksumPath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read checksum file %s: %w", checksumPath, readErr)
		}
		expected := strings.TrimSpace(string(expectedBytes))
		if actual := calculateChecksum(data); actual != expected {
			return nil, fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", path, expected, actual)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumPath, err)
	}
	// No checksum sidecar means data predates checksums; allow the load and
	// let the next save create one.

	return data, nil
}

// writeDataFile atomically replaces path with data and refreshes the
// checksum sidecar. Both files are staged as temp files and renamed so a
// crash mid-write never leaves a torn data file.
func writeDataFile(path string, data []byte) error {
	tempPath := path + ".tmp"
	checksumPath := path + checksumSuffix
	tempChecksumPath := checksumPath + ".tmp"

	defer func() { _ = os.Remove(tempPath) }()
	defer func() { _ = os.Remove(tempChecksumPath) }()

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempPath, err)
	}
	if err := os.WriteFile(tempChecksumPath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempPath, path, err)
	}
	if err := os.Rename(tempChecksumPath, checksumPath); err != nil {
		return fmt.Errorf("CRITICAL: data file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", path, checksumPath, err)
	}
	return nil
}

// marshalAs encodes v in the given data format.
func marshalAs(format string, v any) ([]byte, error) {
	switch format {
	case formatJSON:
		return json.MarshalIndent(v, "", "  ")
	case formatYAML:
		return yaml.Marshal(v)
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(v); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported data format for saving: %s", format)
}

// unmarshalAs decodes data in the given format into v.
func unmarshalAs(format string, data []byte, v any) error {
	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal JSON (checksum may have passed): %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal YAML (checksum may have passed): %w", err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal TOML (checksum may have passed): %w", err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", format)
	}
	return nil
}
