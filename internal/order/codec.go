package order

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeItems writes items as the items_json column value.
func EncodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeItems reads items_json. Empty or blank input is an empty list.
func DecodeItems(raw string) ([]LineItem, error) {
	items := []LineItem{}
	if strings.TrimSpace(raw) == "" {
		return items, nil
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptItems, err)
	}
	if items == nil {
		items = []LineItem{}
	}
	return items, nil
}
