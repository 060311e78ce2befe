package config

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
)

// MaxLineLength is the longest line the controller buffer holds; anything
// past it is dropped.
const MaxLineLength = 1023

// Deserialize parses a comma separated line into dst. Empty fields are
// skipped, unparsable fields read as 0, fields beyond len(dst) are dropped
// and slots without a field keep their previous value. It returns the number
// of slots written.
func Deserialize(line string, dst []int16) int {
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}

	n := 0
	for _, field := range strings.Split(line, ",") {
		if field == "" {
			continue
		}
		if n >= len(dst) {
			break
		}
		dst[n] = int16(atoi(field))
		n++
	}
	return n
}

// atoi reads an optionally signed decimal prefix, ignoring leading blanks
// and anything after the digits.
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

// NewFrame returns size slots set to Unset.
func NewFrame(size int) []int16 {
	values := make([]int16, size)
	for i := range values {
		values[i] = Unset
	}
	return values
}

// Scan feeds fn one freshly defaulted slot array per non-empty line of r.
// Lines longer than MaxLineLength are cut short.
func Scan(r io.Reader, slots int, fn func([]int16) error) error {
	br := bufio.NewReaderSize(r, MaxLineLength+1)
	for {
		line, err := readLine(br)
		if line = strings.TrimSpace(line); line != "" {
			values := NewFrame(slots)
			Deserialize(line, values)
			if err := fn(values); err != nil {
				return err
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fault.Wrap(err, fmsg.With("reading frames"))
		}
	}
}

// readLine returns the next line truncated to MaxLineLength and discards the
// rest of it.
func readLine(br *bufio.Reader) (string, error) {
	chunk, more, err := br.ReadLine()
	line := string(chunk)
	for more && err == nil {
		_, more, err = br.ReadLine()
	}
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}
	return line, err
}
