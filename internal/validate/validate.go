package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinAddressLength = 3
	MaxAddressLength = 200

	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// Error reports a client-supplied input that violates a validation rule.
// Handlers map it to HTTP 400.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Address strings matching any of these are rejected outright. The store only
// ever uses parameterized queries; this is an input hygiene gate, not the
// actual defense.
var sqlInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|EXECUTE)\b`),
	regexp.MustCompile(`(--)|(/\*)|(\*/)`),
	regexp.MustCompile(`(?i)(\bOR\b.*=)|(\bAND\b.*=)`),
	regexp.MustCompile(`(?i)\bUNION\b`),
	regexp.MustCompile(`;.*--`),
	regexp.MustCompile(`(?i)'\s*OR\s*'.*=`),
}

// Address trims and checks a single address string. It returns the trimmed
// address unchanged on success.
func Address(address, field string) (string, error) {
	address = strings.TrimSpace(address)

	if address == "" {
		return "", errorf("%s is required", field)
	}

	// Length bounds count characters, not bytes, so multi-byte addresses
	// are judged the same as ASCII ones.
	length := utf8.RuneCountInString(address)

	if length < MinAddressLength {
		return "", errorf("%s must be at least %d characters long", field, MinAddressLength)
	}

	if length > MaxAddressLength {
		return "", errorf("%s must not exceed %d characters", field, MaxAddressLength)
	}

	if strings.ContainsRune(address, '\x00') {
		return "", errorf("%s contains invalid characters", field)
	}

	for _, pattern := range sqlInjectionPatterns {
		if pattern.MatchString(address) {
			return "", errorf("%s contains invalid characters", field)
		}
	}

	return address, nil
}

// Addresses validates a source/destination pair, labelling errors so the
// caller can tell which side failed.
func Addresses(source, destination string) (string, string, error) {
	cleanSource, err := Address(source, "Source address")
	if err != nil {
		return "", "", err
	}

	cleanDestination, err := Address(destination, "Destination address")
	if err != nil {
		return "", "", err
	}

	return cleanSource, cleanDestination, nil
}

// Limit parses a requested history limit. Unparseable or non-positive values
// fall back to def; anything above MaxHistoryLimit is clamped down.
func Limit(value string, def int) int {
	if def < 1 {
		def = DefaultHistoryLimit
	}

	limit, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}

	return ClampLimit(limit, def)
}

// ClampLimit applies the same rule as Limit to an already-numeric value.
// The store uses it so that callers bypassing the HTTP layer get identical
// clamping.
func ClampLimit(limit, def int) int {
	if limit < 1 {
		return def
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// Coordinates checks that a latitude/longitude pair is finite and within
// range. The values are returned unchanged on success.
func Coordinates(lat, lon float64, location string) (float64, float64, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, 0, errorf("%s coordinates must be numeric", location)
	}

	if lat < -90 || lat > 90 {
		return 0, 0, errorf("%s latitude must be between -90 and 90", location)
	}

	if lon < -180 || lon > 180 {
		return 0, 0, errorf("%s longitude must be between -180 and 180", location)
	}

	return lat, lon, nil
}
