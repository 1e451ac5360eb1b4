package parser

import (
	"fmt"
	"strconv"
)

// VerifyChecksum inspects the "*HH" suffix of an NMEA line. The checksum is
// the XOR of every byte between the leading '$' and the '*'.
//
// When no suffix is present all return values are zero.
func VerifyChecksum(line string) (present, valid bool, value byte) {
	if !hasChecksumSuffix(line) {
		return false, false, 0
	}
	n := len(line)
	parsed, err := strconv.ParseUint(line[n-2:], 16, 8)
	if err != nil {
		// hasChecksumSuffix already guarantees two hex digits.
		panic(fmt.Sprintf("nmea: checksum suffix %q failed to parse: %v", line[n-3:], err))
	}
	start := 0
	if line[0] == sentenceMarker {
		start = 1
	}
	// XOR-ing the body into the expected value leaves zero on a match.
	sum := byte(parsed)
	for i := start; i < n-3; i++ {
		sum ^= line[i]
	}
	return true, sum == 0, byte(parsed)
}

// Checksum computes the checksum of a sentence body (no '$', no suffix).
func Checksum(body string) byte {
	sum := byte(0)
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return sum
}

// AppendChecksum renders body as a complete sentence with a freshly
// computed checksum.
func AppendChecksum(body string) string {
	return formatSentence(body, Checksum(body))
}

func formatSentence(body string, checksum byte) string {
	return fmt.Sprintf("$%s*%02X", body, checksum)
}

func hasChecksumSuffix(line string) bool {
	n := len(line)
	return n >= 3 && line[n-3] == '*' && isHexDigit(line[n-2]) && isHexDigit(line[n-1])
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
