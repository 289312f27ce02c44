package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	emailRe     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitsRe    = regexp.MustCompile(`\d`)
	honorificRe = regexp.MustCompile(`\s*(?:様|さん|殿)$`)
)

// cleanValue strips the label punctuation and honorifics a raw match
// drags along. Returns false when nothing meaningful survives.
func cleanValue(field, v string) (string, bool) {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, ":：")
	v = strings.TrimSpace(v)
	if field == "name" {
		v = honorificRe.ReplaceAllString(v, "")
	}
	if field != "inquiry_text" {
		v = strings.Join(strings.Fields(v), " ")
	}
	if v == "" {
		return "", false
	}
	meaningful := false
	for _, r := range v {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			meaningful = true
			break
		}
	}
	return v, meaningful
}

// validateValue applies the field-specific canonical form. ok=false
// discards the candidate entirely.
func validateValue(field, v string) (string, bool) {
	v, ok := cleanValue(field, v)
	if !ok {
		return "", false
	}
	switch field {
	case "email":
		v = strings.ToLower(v)
		return v, emailRe.MatchString(v)
	case "phone":
		return canonicalPhone(v)
	case "age":
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 || n > 120 {
			return "", false
		}
		return strconv.Itoa(n), true
	case "postal_code":
		return canonicalPostal(v)
	case "url":
		return canonicalURL(v)
	}
	return v, true
}

// canonicalPhone keeps only digits and rehyphenates. Eleven digits are
// mobile numbers (3-4-4); ten digits split 2-4-4 for the metro area
// codes 03 and 06 and 3-3-4 otherwise.
func canonicalPhone(v string) (string, bool) {
	digits := digitsRe.FindAllString(v, -1)
	d := strings.Join(digits, "")
	if !strings.HasPrefix(d, "0") {
		return "", false
	}
	switch len(d) {
	case 11:
		return fmt.Sprintf("%s-%s-%s", d[:3], d[3:7], d[7:]), true
	case 10:
		if d[:2] == "03" || d[:2] == "06" {
			return fmt.Sprintf("%s-%s-%s", d[:2], d[2:6], d[6:]), true
		}
		return fmt.Sprintf("%s-%s-%s", d[:3], d[3:6], d[6:]), true
	}
	return "", false
}

func canonicalPostal(v string) (string, bool) {
	d := strings.Join(digitsRe.FindAllString(v, -1), "")
	if len(d) != 7 {
		return "", false
	}
	return d[:3] + "-" + d[3:], true
}

// canonicalURL ensures a scheme and checks the result parses with a
// non-empty host.
func canonicalURL(v string) (string, bool) {
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		v = "https://" + v
	}
	u, err := url.Parse(v)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", false
	}
	return v, true
}
