package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys lists the settings keys in file order.
var Keys = []string{"log_level", "log_format", "format", "branch_prefix", "no_color"}

// Get returns the value of key as a string.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return s.LogLevel, nil
	case "log_format":
		return s.LogFormat, nil
	case "format":
		return s.Format, nil
	case "branch_prefix":
		return s.BranchPrefix, nil
	case "no_color":
		return strconv.FormatBool(s.NoColor), nil
	default:
		return "", unknownKey(key)
	}
}

// Set parses value and stores it under key.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "log_level":
		if !oneOf(value, "debug", "info", "warn", "error") {
			return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", value)
		}
		s.LogLevel = value
	case "log_format":
		if !oneOf(value, "text", "json") {
			return fmt.Errorf("invalid log_format %q (want text or json)", value)
		}
		s.LogFormat = value
	case "format":
		if !oneOf(value, "text", "json", "yaml") {
			return fmt.Errorf("invalid format %q (want text, json or yaml)", value)
		}
		s.Format = value
	case "branch_prefix":
		s.BranchPrefix = value
	case "no_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid no_color %q: %w", value, err)
		}
		s.NoColor = b
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown settings key: %s (known: %s)", key, strings.Join(Keys, ", "))
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
