package randoms

type Alphabet string

const (
	Digits           Alphabet = "0123456789"
	Letters          Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	LettersAndDigits Alphabet = Digits + Letters
	Whitespace       Alphabet = "\x00 \t\n\r\f"
)

// String returns n characters drawn uniformly from a.
func (s *Source) String(n int, a Alphabet) string {
	if n <= 0 || len(a) == 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = a[s.rng.Intn(len(a))]
	}
	return string(b)
}

func (s *Source) Alphanumeric(n int) string { return s.String(n, LettersAndDigits) }

// Blanks returns n characters that all trim away.
func (s *Source) Blanks(n int) string { return s.String(n, Whitespace) }
