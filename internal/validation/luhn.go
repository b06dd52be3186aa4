package validation

// luhnValid checks a digit string against the Luhn mod-10 checksum: walking
// from the rightmost digit, every second digit is doubled (subtracting 9 when
// the result exceeds 9) and the total must be divisible by 10.
func luhnValid(digits string) bool {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[len(digits)-1-i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}
