package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\(?\d{2}\)?\s?9?\d{4}-?\d{4}$`)
	cepRegex   = regexp.MustCompile(`^\d{5}-?\d{3}$`)
)

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsValidEmail reports whether s looks like local@domain.tld after trimming.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// IsValidPhone accepts Brazilian numbers such as "(11) 91234-5678" or "1133334444".
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(s))
}

// IsValidCEP accepts "01234-567" and "01234567".
func IsValidCEP(s string) bool {
	return cepRegex.MatchString(strings.TrimSpace(s))
}

// OnlyDigits strips every non-digit rune from s.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF validates the two mod-11 check digits of a CPF. Formatting
// characters are ignored; sequences of one repeated digit are rejected.
func IsValidCPF(s string) bool {
	digits := toDigits(OnlyDigits(s))
	if len(digits) != 11 || allEqual(digits) {
		return false
	}

	first := checkDigit(digits[:9], descendingWeights(10, 9))
	second := checkDigit(digits[:10], descendingWeights(11, 10))

	return digits[9] == first && digits[10] == second
}

// IsValidCNPJ validates the two mod-11 check digits of a CNPJ.
func IsValidCNPJ(s string) bool {
	digits := toDigits(OnlyDigits(s))
	if len(digits) != 14 || allEqual(digits) {
		return false
	}

	first := checkDigit(digits[:12], cnpjFirstWeights)
	second := checkDigit(digits[:13], cnpjSecondWeights)

	return digits[12] == first && digits[13] == second
}

// IsValidCPFOrCNPJ dispatches on the number of digits: 11 is a CPF, 14 a CNPJ.
func IsValidCPFOrCNPJ(s string) bool {
	switch len(OnlyDigits(s)) {
	case 11:
		return IsValidCPF(s)
	case 14:
		return IsValidCNPJ(s)
	default:
		return false
	}
}

// checkDigit computes 11 - (sum mod 11), where results of 10 or 11 become 0.
func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	digit := 11 - sum%11
	if digit >= 10 {
		return 0
	}
	return digit
}

func descendingWeights(start, n int) []int {
	weights := make([]int, n)
	for i := range weights {
		weights[i] = start - i
	}
	return weights
}

func toDigits(s string) []int {
	digits := make([]int, len(s))
	for i := range s {
		digits[i] = int(s[i] - '0')
	}
	return digits
}

func allEqual(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

// FormatCPF renders 11 digits as 000.000.000-00. Other inputs are returned digits-only.
func FormatCPF(s string) string {
	d := OnlyDigits(s)
	if len(d) != 11 {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ renders 14 digits as 00.000.000/0000-00.
func FormatCNPJ(s string) string {
	d := OnlyDigits(s)
	if len(d) != 14 {
		return d
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// FormatPhone renders 10 or 11 digits as (00) 0000-0000 or (00) 00000-0000.
func FormatPhone(s string) string {
	d := OnlyDigits(s)
	switch len(d) {
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	default:
		return d
	}
}

// FormatCEP renders 8 digits as 00000-000.
func FormatCEP(s string) string {
	d := OnlyDigits(s)
	if len(d) != 8 {
		return d
	}
	return d[0:5] + "-" + d[5:8]
}
