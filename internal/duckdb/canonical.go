package duckdb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CanonicalJSON returns deterministic JSON bytes for hashing and storage.
func CanonicalJSON(value any) ([]byte, error) {
	normalized, err := normalizeJSON(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// FingerprintJSON returns a SHA-256 hex digest for the canonical JSON.
func FingerprintJSON(value any) (string, error) {
	data, err := CanonicalJSON(value)
	if err != nil {
		return "", err
	}
	return fingerprintBytes(data), nil
}

func fingerprintBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// normalizeJSON round-trips structs through JSON so map keys come out sorted.
func normalizeJSON(value any) (any, error) {
	switch v := value.(type) {
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json raw: %w", err)
		}
		return decoded, nil
	case []byte:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json bytes: %w", err)
		}
		return decoded, nil
	case map[string]any, []any, string, float64, bool, nil:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize json value: %w", err)
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json value: %w", err)
		}
		return decoded, nil
	}
}
