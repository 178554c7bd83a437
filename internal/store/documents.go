package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// readDocument loads and decodes the JSON document stored under key. The
// second return value reports whether the document existed; a missing key is
// not an error.
func readDocument[T any](ctx context.Context, kv KeyValueStore, key string) (T, bool, error) {
	var doc T

	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, fmt.Errorf("read document (key=%s): %w", key, err)
	}

	if err = json.Unmarshal(raw, &doc); err != nil {
		return doc, false, fmt.Errorf("decode document (key=%s): %w", key, err)
	}

	return doc, true, nil
}

// writeDocument encodes doc as JSON and durably stores it under key,
// replacing any previous document.
func writeDocument(ctx context.Context, kv KeyValueStore, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document (key=%s): %w", key, err)
	}

	if err = kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write document (key=%s): %w", key, err)
	}

	return nil
}
