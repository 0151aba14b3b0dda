// Package validation checks equipment records before they reach the store.
// Every function here is pure.
package validation

import (
	"net"
	"regexp"
	"strings"

	"github.com/bcnelson/netinventory/internal/domain"
)

const (
	msgInvalidIP  = "Invalid IP format"
	msgInvalidMAC = "Invalid MAC format"
)

// macPattern accepts six hex pairs joined either all by ':' or all by '-'.
var macPattern = regexp.MustCompile(`^[0-9A-Fa-f]{2}(?:(?::[0-9A-Fa-f]{2}){5}|(?:-[0-9A-Fa-f]{2}){5})$`)

// IsValidIP reports whether s is an IPv4 or IPv6 address literal.
func IsValidIP(s string) bool {
	return net.ParseIP(s) != nil
}

// IsValidMAC reports whether s is empty or a MAC address in
// XX:XX:XX:XX:XX:XX or XX-XX-XX-XX-XX-XX form.
func IsValidMAC(s string) bool {
	if s == "" {
		return true
	}
	return macPattern.MatchString(s)
}

// ValidateEquipment checks a candidate record and returns the first problem
// found, or nil. Required fields are checked in the order name, type, ip,
// before the IP and MAC syntax checks.
func ValidateEquipment(in *domain.EquipmentInput) *ValidationError {
	if in == nil {
		return missingField("name")
	}

	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"type", in.Type},
		{"ip", in.IP},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return missingField(r.field)
		}
	}

	if !IsValidIP(in.IP) {
		return NewValidationError("ip", in.IP, msgInvalidIP)
	}

	if mac := domain.StringValue(in.MAC); !IsValidMAC(mac) {
		return NewValidationError("mac", mac, msgInvalidMAC)
	}

	return nil
}
