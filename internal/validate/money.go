package validate

import "strconv"

// ParseInt parses a strict decimal integer: optional leading '-', no
// leading '+', digits only, no surrounding junk.
func ParseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	if s[0] == '+' {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i >= len(s) {
		return 0, false
	}
	var v int64
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v, true
}

// ParseMoney parses a non-negative amount into integer cents. Accepted
// forms: "D", "D.", "D.D", "D.DD" and ".D"/".DD" with an empty integer
// part. A leading '+' is rejected. A single fractional digit means tenths.
func ParseMoney(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	if s[0] == '+' {
		return 0, false
	}
	whole, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			whole, frac = s[:i], s[i+1:]
			break
		}
	}
	if len(frac) > 2 {
		return 0, false
	}
	var ia int64
	for i := 0; i < len(whole); i++ {
		c := whole[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		ia = ia*10 + int64(c-'0')
	}
	var ib int64
	for i := 0; i < len(frac); i++ {
		c := frac[i]
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	switch len(frac) {
	case 1:
		ib = int64(frac[0]-'0') * 10
	case 2:
		ib = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	}
	return ia*100 + ib, true
}

// FormatMoney renders cents as a decimal amount with exactly two fractional
// digits.
func FormatMoney(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "."
	b := cents % 100
	if b < 10 {
		s += "0"
	}
	s += strconv.FormatInt(b, 10)
	if neg {
		s = "-" + s
	}
	return s
}
