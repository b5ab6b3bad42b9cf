// pkg/models/vulnerability.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the backend-reported severity of a vulnerability
type Severity string

const (
	SeverityCritical    Severity = "Critical"
	SeverityHigh        Severity = "High"
	SeverityMedium      Severity = "Medium"
	SeverityLow         Severity = "Low"
	SeverityUnspecified Severity = ""
)

// ParseSeverity maps a raw severity string onto the known levels, case-insensitively.
// Unknown values are unspecified.
func ParseSeverity(raw string) Severity {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CRITICAL":
		return SeverityCritical
	case "HIGH":
		return SeverityHigh
	case "MEDIUM":
		return SeverityMedium
	case "LOW":
		return SeverityLow
	default:
		return SeverityUnspecified
	}
}

// UnmarshalJSON normalises the severity while decoding
func (s *Severity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = SeverityUnspecified
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid severity %s: %w", data, err)
	}
	*s = ParseSeverity(raw)
	return nil
}

// Label returns the display label, "Unspecified" for an empty severity
func (s Severity) Label() string {
	if s == SeverityUnspecified {
		return "Unspecified"
	}
	return string(s)
}

// VulnerabilityID accepts both JSON strings and JSON numbers
type VulnerabilityID string

func (id *VulnerabilityID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = VulnerabilityID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid vulnerability id %s: %w", data, err)
	}
	*id = VulnerabilityID(n.String())
	return nil
}

// Vulnerability is a single finding attached to an asset
type Vulnerability struct {
	ID          VulnerabilityID `json:"id"`
	Severity    Severity        `json:"severity"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CVSSv3Score *float64        `json:"cvssv3_score,omitempty"`
}

// AssetDetail is the payload of GET /assets/{id}
type AssetDetail struct {
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}
