package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// Asset ids are positive decimal integers
	assetIDPattern = regexp.MustCompile(`^[1-9][0-9]{0,18}$`)

	// UUID: standard format with dashes
	uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ValidateAssetID parses an asset id taken from a URL parameter
// Returns the id if valid, error otherwise
func ValidateAssetID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("asset id cannot be empty")
	}
	if !assetIDPattern.MatchString(raw) {
		return 0, fmt.Errorf("invalid asset id %q: must be a positive integer", raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid asset id %q: %w", raw, err)
	}
	return id, nil
}

// ValidateUUID validates UUID format
// Returns error if invalid, nil if valid
func ValidateUUID(uuid string) error {
	if uuid == "" {
		return fmt.Errorf("UUID cannot be empty")
	}
	if !uuidPattern.MatchString(uuid) {
		return fmt.Errorf("invalid UUID format")
	}
	return nil
}
