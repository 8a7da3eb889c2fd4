package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Format controls how Data is encoded for output.
type Format string

const (
	// FormatJSON emits application/json payloads.
	FormatJSON Format = "json"
	// FormatForm emits application/x-www-form-urlencoded payloads.
	FormatForm Format = "form"
	// FormatPretty emits one key=value line per entry.
	FormatPretty Format = "pretty"
)

// ErrUnknownFormat is returned by Encode for unsupported formats.
var ErrUnknownFormat = errors.New("serialize: unknown format")

// ParseFormat normalises a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatForm, "urlencoded":
		return FormatForm, nil
	case FormatPretty, "text":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// ContentType reports the MIME type produced by Encode for format.
func ContentType(format Format) string {
	switch format {
	case FormatForm:
		return "application/x-www-form-urlencoded"
	case FormatPretty:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Encode serializes data using format. Keys are emitted in sorted order for
// the form and pretty formats.
func Encode(data Data, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if data == nil {
			data = Data{}
		}
		return json.Marshal(data)
	case FormatForm:
		values := url.Values{}
		for key, value := range data {
			values.Set(key, fmt.Sprint(value))
		}
		return []byte(values.Encode()), nil
	case FormatPretty:
		var b strings.Builder
		for _, key := range sortedKeys(data) {
			fmt.Fprintf(&b, "%s=%v\n", key, data[key])
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func sortedKeys(data Data) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
