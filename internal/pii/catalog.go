// Package pii detects and redacts personally identifiable information in
// relay message content before it can reach the anonymous reporter's side
// of the channel.
package pii

import (
	"regexp"
	"strings"
)

// Category tags one kind of personally identifiable information.
// The set is closed; extending it means adding a matcher to the catalog.
type Category string

const (
	CategoryEmail         Category = "EMAIL"
	CategorySSN           Category = "US_SSN"
	CategoryPaymentCard   Category = "PAYMENT_CARD"
	CategoryPhone         Category = "US_PHONE"
	CategoryIPAddress     Category = "IP_ADDRESS"
	CategoryBirthDate     Category = "BIRTH_DATE"
	CategoryStreetAddress Category = "STREET_ADDRESS"
	CategoryEmployeeID    Category = "EMPLOYEE_ID"
)

// Span is a half-open [Start, End) byte range in the scanned text.
type Span struct {
	Start int
	End   int
}

// Matcher is a single detection rule for one PII category.
type Matcher interface {
	Category() Category
	Warning() string
	FindAll(text string) []Span
}

// patternMatcher pairs a compiled regex with an optional post-match
// validator. RE2 has no lookahead, so checks like SSN reserved ranges and
// card checksums run as validator funcs over the matched substring.
type patternMatcher struct {
	category Category
	re       *regexp.Regexp
	validate func(match string) bool
	warning  string
}

func (m *patternMatcher) Category() Category { return m.category }
func (m *patternMatcher) Warning() string    { return m.warning }

// FindAll scans the whole text. The starting position is carried
// explicitly, so the matcher holds no cross-call state and is safe to
// share between concurrent scans. A zero-length match advances the
// position by one byte so the scan always terminates.
func (m *patternMatcher) FindAll(text string) []Span {
	var spans []Span
	pos := 0
	for pos < len(text) {
		loc := m.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end == start {
			pos = start + 1
			continue
		}
		if m.validate == nil || m.validate(text[start:end]) {
			spans = append(spans, Span{Start: start, End: end})
		}
		pos = end
	}
	return spans
}

// catalog lists the matchers in scan order, most sensitive first, so a
// national ID is tagged before a looser numeric pattern could claim the
// same span. Static configuration; never mutated after init.
var catalog = []Matcher{
	&patternMatcher{
		category: CategorySSN,
		re:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		validate: validSSN,
		warning:  "Content appears to contain a Social Security number.",
	},
	&patternMatcher{
		category: CategoryPaymentCard,
		re:       regexp.MustCompile(`\b(?:\d{4}[ -]?){3}\d{4}\b`),
		validate: luhnValid,
		warning:  "Content appears to contain a payment card number.",
	},
	&patternMatcher{
		category: CategoryEmployeeID,
		re:       regexp.MustCompile(`(?i)\bEMP-?\d{4,8}\b`),
		warning:  "Content appears to contain an employee ID.",
	},
	&patternMatcher{
		category: CategoryEmail,
		re:       regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
		warning:  "Content appears to contain an email address.",
	},
	&patternMatcher{
		category: CategoryPhone,
		re:       regexp.MustCompile(`(\+1[-. ]?)?\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`),
		warning:  "Content appears to contain a phone number.",
	},
	&patternMatcher{
		category: CategoryBirthDate,
		re:       regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])[/-](?:0?[1-9]|[12][0-9]|3[01])[/-](?:19|20)\d{2}\b`),
		warning:  "Content appears to contain a birth date.",
	},
	&patternMatcher{
		category: CategoryStreetAddress,
		re:       regexp.MustCompile(`(?i)\b\d{1,5}\s+[A-Za-z][A-Za-z ]*\s(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way)\b`),
		warning:  "Content appears to contain a street address.",
	},
	&patternMatcher{
		category: CategoryIPAddress,
		re:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		validate: validIPv4,
		warning:  "Content appears to contain an IP address.",
	},
}

// Catalog returns the matchers in scan order.
func Catalog() []Matcher {
	return catalog
}

// validSSN rejects the reserved invalid SSN ranges: area 000, 666 or
// 900-999, group 00, serial 0000.
func validSSN(match string) bool {
	parts := strings.SplitN(match, "-", 3)
	if len(parts) != 3 {
		return false
	}
	area, group, serial := parts[0], parts[1], parts[2]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	if group == "00" || serial == "0000" {
		return false
	}
	return true
}

// luhnValid runs the Luhn checksum over the digits of the match.
func luhnValid(match string) bool {
	sum := 0
	double := false
	for i := len(match) - 1; i >= 0; i-- {
		c := match[i]
		if c < '0' || c > '9' {
			continue
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// validIPv4 checks every dotted octet is in range.
func validIPv4(match string) bool {
	for _, part := range strings.Split(match, ".") {
		if len(part) > 1 && part[0] == '0' {
			return false
		}
		n := 0
		for i := 0; i < len(part); i++ {
			n = n*10 + int(part[i]-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}
