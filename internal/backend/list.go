package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// GetList fetches path and decodes a list response. The backend returns
// lists either as a bare array or wrapped in a {"results": [...]}
// envelope; both are accepted.
func GetList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	raw, err := c.GetRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseList[T](raw)
}

// ParseList decodes a bare JSON array or a {"results": [...]} envelope.
func ParseList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	if envelope.Results == nil {
		return []T{}, nil
	}
	return envelope.Results, nil
}
