package pii

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherFor(t *testing.T, category Category) Matcher {
	t.Helper()
	for _, m := range Catalog() {
		if m.Category() == category {
			return m
		}
	}
	t.Fatalf("no matcher for category %s", category)
	return nil
}

// TestCatalogSingleSamples verifies that one embedded sample per category
// is found with exact offsets.
func TestCatalogSingleSamples(t *testing.T) {
	cases := []struct {
		name     string
		category Category
		text     string
		want     string
	}{
		{"ssn", CategorySSN, "my ssn is 123-45-6789 ok", "123-45-6789"},
		{"card spaces", CategoryPaymentCard, "card: 4111 1111 1111 1111 thanks", "4111 1111 1111 1111"},
		{"card dashes", CategoryPaymentCard, "pay with 4111-1111-1111-1111", "4111-1111-1111-1111"},
		{"employee id", CategoryEmployeeID, "ask for emp-12345 in HR", "emp-12345"},
		{"email", CategoryEmail, "reach me at jane.doe@example.com", "jane.doe@example.com"},
		{"phone parens", CategoryPhone, "call (555) 123-4567 today", "(555) 123-4567"},
		{"phone dashes", CategoryPhone, "call 555-123-4567 today", "555-123-4567"},
		{"ip", CategoryIPAddress, "server at 10.0.0.1 went down", "10.0.0.1"},
		{"birth date", CategoryBirthDate, "born 04/12/1985 in Ohio", "04/12/1985"},
		{"street address", CategoryStreetAddress, "lives at 42 Elm Street apparently", "42 Elm Street"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := matcherFor(t, tc.category)
			spans := m.FindAll(tc.text)
			require.Len(t, spans, 1)

			start := strings.Index(tc.text, tc.want)
			assert.Equal(t, start, spans[0].Start)
			assert.Equal(t, start+len(tc.want), spans[0].End)
			assert.Equal(t, tc.want, tc.text[spans[0].Start:spans[0].End])
		})
	}
}

// TestCatalogRejectsInvalidValues verifies the post-match validators.
func TestCatalogRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name     string
		category Category
		text     string
	}{
		{"ssn area 000", CategorySSN, "000-12-3456"},
		{"ssn area 666", CategorySSN, "666-12-3456"},
		{"ssn area 9xx", CategorySSN, "912-34-5678"},
		{"ssn group 00", CategorySSN, "123-00-4567"},
		{"ssn serial 0000", CategorySSN, "123-45-0000"},
		{"card bad luhn", CategoryPaymentCard, "1234 5678 9012 3456"},
		{"ip octet out of range", CategoryIPAddress, "999.999.999.999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := matcherFor(t, tc.category)
			assert.Empty(t, m.FindAll(tc.text))
		})
	}
}

// TestCatalogOrder verifies the most-sensitive-first scan order is stable.
func TestCatalogOrder(t *testing.T) {
	var got []Category
	for _, m := range Catalog() {
		got = append(got, m.Category())
	}
	assert.Equal(t, []Category{
		CategorySSN,
		CategoryPaymentCard,
		CategoryEmployeeID,
		CategoryEmail,
		CategoryPhone,
		CategoryBirthDate,
		CategoryStreetAddress,
		CategoryIPAddress,
	}, got)
}

// TestFindAllZeroLengthMatchTerminates guards against a pattern that can
// match the empty string looping forever.
func TestFindAllZeroLengthMatchTerminates(t *testing.T) {
	m := &patternMatcher{
		category: CategoryEmail,
		re:       regexp.MustCompile(`a*`),
		warning:  "test",
	}

	spans := m.FindAll("bbab")
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Start: 2, End: 3}, spans[0])

	assert.Empty(t, m.FindAll("zzz"))
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4111 1111 1111 1111"))
	assert.True(t, luhnValid("4111-1111-1111-1111"))
	assert.False(t, luhnValid("4111 1111 1111 1112"))
}
