package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var (
	identifierRegex = regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
	)
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// safePunctuation is the punctuation IsSafeText accepts besides letters and digits.
const safePunctuation = "@._-+:,!?#"

// IsValidIdentifier reports whether s is a UUID in canonical 8-4-4-4-12 hex form.
func IsValidIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// IsValidEmail reports whether s has exactly one '@', a non-empty local part,
// and a domain containing a '.' followed by a non-empty suffix.
func IsValidEmail(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, domainPart, _ := strings.Cut(s, "@")
	if local == "" {
		return false
	}
	dot := strings.LastIndex(domainPart, ".")
	if dot < 0 {
		return false
	}
	return dot < len(domainPart)-1
}

// IsValidDate reports whether s is a real calendar day in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// IsSafeText reports whether s, with whitespace removed, consists only of
// letters, digits and the safe punctuation set, and contains no "--".
// The empty string is safe.
func IsSafeText(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if strings.Contains(stripped, "--") {
		return false
	}
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !strings.ContainsRune(safePunctuation, r) {
			return false
		}
	}
	return true
}

// ParseIdentifier parses raw as the identifier named field. A malformed value
// yields a validation error naming both.
func ParseIdentifier(field, raw string) (uuid.UUID, error) {
	if !IsValidIdentifier(raw) {
		return uuid.Nil, Errorf(KindValidation, "%s %s is not a valid UUID", field, raw)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Errorf(KindValidation, "%s %s is not a valid UUID", field, raw)
	}
	return id, nil
}

// MaxQuantity is the largest quantity storage can hold (PostgreSQL INTEGER).
const MaxQuantity = math.MaxInt32

// ParseNumber parses raw as a base-10 integer that fits in a stored quantity.
func ParseNumber(raw string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, Errorf(KindValidation, "%s is not a valid number", raw)
	}
	return int(n), nil
}
