package address

import (
	"strings"
)

// parseLenient is the fallback for address lists the strict parser rejects.
// It splits the list on commas outside of quotes, angle brackets and
// comments, and understands "Name: member, member;" groups. Each mailbox is
// then broken down by parseMailbox.
func parseLenient(v string) []Address {
	var (
		out     []Address
		group   *Address
		part    strings.Builder
		quoted  bool
		escaped bool
		angle   bool
		comment int
	)

	finish := func() {
		a, ok := parseMailbox(part.String())
		part.Reset()
		if !ok {
			return
		}
		if group != nil {
			group.Group = append(group.Group, a)
		} else {
			out = append(out, a)
		}
	}

	closeGroup := func() {
		if group != nil {
			out = append(out, *group)
			group = nil
		}
	}

	for _, c := range v {
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"' && comment == 0 && !angle:
			quoted = !quoted
		case quoted:
		case c == '(':
			comment++
		case c == ')' && comment > 0:
			comment--
		case comment > 0:
		case c == '<':
			angle = true
		case c == '>':
			angle = false
		case angle:
		case c == ':' && group == nil:
			group = &Address{Name: unquoteName(strings.TrimSpace(part.String())), IsGroup: true}
			part.Reset()
			continue
		case c == ',':
			finish()
			continue
		case c == ';':
			finish()
			closeGroup()
			continue
		}

		part.WriteRune(c)
	}

	finish()
	closeGroup()

	return out
}

// extractComments separates the text of a mailbox from its (comments).
func extractComments(s string) (string, string) {
	var clean, comment strings.Builder
	nestLevel := 0
	quoted := false
	for _, c := range s {
		switch {
		case c == '"' && nestLevel == 0:
			quoted = !quoted
			clean.WriteRune(c)
		case quoted:
			clean.WriteRune(c)
		case c == '(':
			nestLevel++
			if nestLevel > 1 {
				comment.WriteRune(c)
			}
		case c == ')':
			nestLevel--
			switch {
			case nestLevel == 0:
			case nestLevel < 0:
				nestLevel = 0
				clean.WriteRune(c)
			default:
				comment.WriteRune(c)
			}
		case nestLevel > 0:
			comment.WriteRune(c)
		default:
			clean.WriteRune(c)
		}
	}

	return clean.String(), comment.String()
}

// parseMailbox turns one "Name <addr>" style entry into an Address. An entry
// in angle brackets uses whatever is inside them as the address. Otherwise
// the last word containing an @ is the address and all remaining words make
// up the display name. Without such a word the entry is only a name, which
// Convert drops. If there is no name, the comment is used instead.
func parseMailbox(s string) (Address, bool) {
	text, com := extractComments(s)
	text = strings.TrimSpace(text)
	com = strings.TrimSpace(com)

	if text == "" {
		return Address{}, false
	}

	var name, email string
	if lt := strings.IndexRune(text, '<'); lt >= 0 {
		rest := text[lt+1:]
		after := ""
		if gt := strings.IndexRune(rest, '>'); gt >= 0 {
			rest, after = rest[:gt], rest[gt+1:]
		}
		email = strings.TrimSpace(rest)
		name = strings.TrimSpace(text[:lt] + " " + after)
	} else {
		words := strings.Fields(text)
		at := -1
		for i := len(words) - 1; i >= 0; i-- {
			if strings.ContainsRune(words[i], '@') {
				at = i
				break
			}
		}

		if at < 0 {
			name = strings.Join(words, " ")
		} else {
			email = words[at]
			name = strings.Join(append(append([]string{}, words[:at]...), words[at+1:]...), " ")
		}
	}

	name = unquoteName(name)
	if name == "" {
		name = com
	}

	if email == "" && name == "" {
		return Address{}, false
	}

	return Address{Name: name, Address: email}, true
}

// unquoteName removes the double quotes and backslash escapes of a quoted
// display name.
func unquoteName(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}

	var b strings.Builder
	escaped := false
	for _, c := range s {
		switch {
		case escaped:
			b.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
		default:
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}
