package urlenc

import (
	"errors"

	"github.com/indigo-web/searchparams/internal/hexconv"
	"github.com/indigo-web/utils/uf"
)

// ErrDecoding is returned on a malformed percent-escape: either a truncated
// sequence or one containing non-hexadecimal digits.
var ErrDecoding = errors.New("invalid urlencoded sequence")

// Decode decodes plus signs into spaces and percent-escapes into the bytes
// they encode, appending the result to dst. If the source needed no decoding
// it is returned as-is without touching dst. The possibly grown buffer is
// returned alongside for reuse.
func Decode(src, dst []byte) (decoded, buffer []byte, err error) {
	dsthead := len(dst)
	modified := false

loop:
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '+':
			modified = true
			dst = append(dst, src[:i]...)
			dst = append(dst, ' ')
			src = src[i+1:]
			goto loop
		case '%':
			modified = true

			if len(src)-i < 3 {
				return nil, dst, ErrDecoding
			}

			a, b := hexconv.Halfbyte[src[i+1]], hexconv.Halfbyte[src[i+2]]
			if a|b > 0x0f {
				return nil, dst, ErrDecoding
			}

			dst = append(dst, src[:i]...)
			dst = append(dst, (a<<4)|b)
			src = src[i+3:]
			goto loop
		}
	}

	if !modified {
		return src, dst, nil
	}

	dst = append(dst, src...)
	return dst[dsthead:], dst, nil
}

// DecodeString is Decode for strings. The decoded string aliases the buffer,
// which therefore must only be appended to, never truncated, for as long as
// the string is in use.
func DecodeString(src string, buff []byte) (decoded string, buffer []byte, err error) {
	d, buffer, err := Decode(uf.S2B(src), buff)
	return uf.B2S(d), buffer, err
}

const upperhex = "0123456789ABCDEF"

// AppendEncoded appends the percent-encoded form of src to dst. Unreserved
// characters (alphanumerics and -_.~) are written as-is, everything else as
// a percent-escape with uppercase hex digits. A space is always written as
// %20, never as a plus sign.
func AppendEncoded(dst []byte, src string) []byte {
	for i := 0; i < len(src); i++ {
		c := src[i]
		if isUnreserved(c) {
			dst = append(dst, c)
		} else {
			dst = append(dst, '%', upperhex[c>>4], upperhex[c&0x0f])
		}
	}

	return dst
}

func isUnreserved(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
