package param

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zostay/go-mimetree/message/header/field"
)

// Parse takes a header field body and parses it as a Value. Parameter names are
// lowercased and kept in the order they first appear. Quoted values are
// unquoted, MIME encoded words are decoded and RFC 2231 continuations
// (name*0, name*1*, ...) are joined and decoded into a single parameter.
//
// Parse never fails. Garbage in results in some Value out.
func Parse(v string) *Value {
	parts := splitParams(v)

	pv := &Value{
		v:  strings.TrimSpace(parts[0]),
		ps: make([]Pair, 0, len(parts)-1),
	}

	raw := make([]Pair, 0, len(parts)-1)
	for _, part := range parts[1:] {
		var k, val string
		if eq := strings.IndexRune(part, '='); eq >= 0 {
			k = part[:eq]
			val = unquote(strings.TrimSpace(part[eq+1:]))
		} else {
			k = part
		}

		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		raw = append(raw, Pair{k, val})
	}

	pv.ps = joinContinuations(raw)
	for i := range pv.ps {
		if strings.Contains(pv.ps[i].Value, "=?") {
			if dec, err := field.Decode(pv.ps[i].Value); err == nil {
				pv.ps[i].Value = dec
			}
		}
	}

	return pv
}

// splitParams splits on every semi-colon that is not inside a quoted string.
// The result always has at least one element.
func splitParams(v string) []string {
	var (
		parts   []string
		quoted  bool
		escaped bool
		start   int
	)

	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case !quoted && c == ';':
			parts = append(parts, v[start:i])
			start = i + 1
		}
	}

	return append(parts, v[start:])
}

// unquote strips surrounding double quotes and backslash escapes. An
// unterminated quoted string runs to the end of the value.
func unquote(v string) string {
	if !strings.HasPrefix(v, `"`) {
		return v
	}

	var b strings.Builder
	escaped := false
	for i := 1; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return b.String()
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

type segment struct {
	n        int
	extended bool
	value    string
}

type joined struct {
	plain    string
	segments []segment
}

// splitContinuationKey breaks "name*2*" into its name, segment number and
// extended flag. Keys without a star are returned with ok set to false.
func splitContinuationKey(k string) (name string, n int, extended bool, ok bool) {
	star := strings.IndexRune(k, '*')
	if star < 0 {
		return k, 0, false, false
	}

	name, rest := k[:star], k[star+1:]
	if strings.HasSuffix(rest, "*") {
		extended = true
		rest = rest[:len(rest)-1]
	}

	if rest == "" {
		return name, 0, extended, true
	}

	n, err := strconv.Atoi(rest)
	if err != nil {
		return k, 0, false, false
	}

	return name, n, extended, true
}

func joinContinuations(raw []Pair) []Pair {
	order := make([]string, 0, len(raw))
	byName := make(map[string]*joined, len(raw))

	for _, p := range raw {
		name, n, extended, ok := splitContinuationKey(p.Key)

		j, seen := byName[name]
		if !seen {
			j = &joined{}
			byName[name] = j
			order = append(order, name)
		}

		if ok {
			j.segments = append(j.segments, segment{n, extended, p.Value})
		} else {
			j.plain = p.Value
		}
	}

	ps := make([]Pair, 0, len(order))
	for _, name := range order {
		j := byName[name]
		if len(j.segments) == 0 {
			ps = append(ps, Pair{name, j.plain})
			continue
		}

		ps = append(ps, Pair{name, decodeSegments(j.segments)})
	}

	return ps
}

func decodeSegments(segs []segment) string {
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].n < segs[j].n })

	var (
		buf     []byte
		charset string
	)

	for i, s := range segs {
		if !s.extended {
			buf = append(buf, s.value...)
			continue
		}

		v := s.value
		if i == 0 {
			// charset'language'value
			if q1 := strings.IndexRune(v, '\''); q1 >= 0 {
				if q2 := strings.IndexRune(v[q1+1:], '\''); q2 >= 0 {
					charset = v[:q1]
					v = v[q1+1+q2+1:]
				}
			}
		}

		buf = append(buf, percentDecode(v)...)
	}

	if s, err := field.CharsetDecoder(charset, buf); err == nil {
		return s
	}

	return string(buf)
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// percentDecode decodes %XX escapes, leaving malformed ones alone.
func percentDecode(v string) []byte {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '%' && i+2 < len(v) {
			hi, ok1 := unhex(v[i+1])
			lo, ok2 := unhex(v[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, v[i])
	}
	return out
}
