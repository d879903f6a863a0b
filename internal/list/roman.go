package list

// romanValues and romanSymbols describe the greedy subtractive encoding,
// largest value first. IntToRoman and RomanToInt round-trip every
// integer in [1, 3999].
var (
	romanValues  = []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	romanSymbols = []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
)

var romanDigits = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50,
	'C': 100, 'D': 500, 'M': 1000,
}

// RomanToInt converts an uppercase roman numeral to its integer value.
// Characters outside the roman digit set count as zero; malformed input
// is not rejected here because the detector's pattern already guarantees
// well-formed numerals.
func RomanToInt(roman string) int {
	result := 0
	prev := 0
	for i := len(roman) - 1; i >= 0; i-- {
		v := romanDigits[roman[i]]
		if v < prev {
			result -= v
		} else {
			result += v
		}
		prev = v
	}
	return result
}

// IntToRoman converts n to an uppercase roman numeral using greedy
// subtractive encoding. Defined for n in [1, 3999]; outside that range
// the result is the empty string for n < 1 and an over-long numeral
// above 3999, so callers validate first.
func IntToRoman(n int) string {
	var out []byte
	for i := 0; n > 0 && i < len(romanValues); i++ {
		for n >= romanValues[i] {
			out = append(out, romanSymbols[i]...)
			n -= romanValues[i]
		}
	}
	return string(out)
}
