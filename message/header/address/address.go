package address

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
	"golang.org/x/net/idna"

	"github.com/zostay/go-mimetree/message/header/field"
)

// Address is either a single mailbox or a named group of mailboxes.
type Address struct {
	// Name is the display name of the mailbox or the name of the group.
	Name string

	// Address is the addr-spec of a mailbox. It is empty for groups.
	Address string

	// IsGroup is true when this is a group, even an empty one.
	IsGroup bool

	// Group holds the members of a group.
	Group []Address
}

// Parse parses an address list. The lenient parser splits the list into
// entries first. The strict parse is only used when there are no groups or
// comments and it finds the same entries, each with a bare addr-spec. Otherwise the
// lenient result is returned. An empty or blank value returns nil.
func Parse(v string) []Address {
	if strings.TrimSpace(v) == "" {
		return nil
	}

	lenient := parseLenient(v)
	if strings.ContainsRune(v, '(') {
		return lenient
	}

	for _, a := range lenient {
		if a.IsGroup {
			return lenient
		}
	}

	strict, ok := parseStrict(v)
	if !ok || len(strict) != len(lenient) {
		return lenient
	}

	for _, a := range strict {
		if !isBareAddrSpec(a.Address) {
			return lenient
		}
	}

	return strict
}

// parseStrict runs go-addr on the list. Inputs go-addr cannot cope with are
// reported as not ok, including those that make it panic.
func parseStrict(v string) (as []Address, ok bool) {
	defer func() {
		if recover() != nil {
			as, ok = nil, false
		}
	}()

	al, err := addr.ParseEmailAddressList(v)
	if err != nil {
		return nil, false
	}

	return FromList(al), true
}

func isBareAddrSpec(a string) bool {
	return a != "" && !strings.ContainsAny(a, " \t\r\n()<>,;")
}

// FromList converts a go-addr address list into Address values.
func FromList(al addr.AddressList) []Address {
	as := make([]Address, 0, len(al))
	for _, a := range al {
		switch v := a.(type) {
		case *addr.Group:
			g := Address{Name: unquoteName(strings.TrimSpace(v.DisplayName())), IsGroup: true}
			for _, mb := range v.MailboxList() {
				g.Group = append(g.Group, Address{
					Name:    unquoteName(strings.TrimSpace(mb.DisplayName())),
					Address: mb.Address(),
				})
			}
			as = append(as, g)
		default:
			as = append(as, Address{
				Name:    unquoteName(strings.TrimSpace(a.DisplayName())),
				Address: a.Address(),
			})
		}
	}
	return as
}

// Convert renders the addresses as header text. Domains are converted to
// their ASCII form with punycode, local parts and names that need it become
// MIME encoded words, and groups are rendered as "Name:member, member;".
// Addresses are joined with ", ".
//
// If unique is not nil, every converted mailbox address that is not already
// in the list is appended to it, in order. Mailboxes without an address are
// dropped.
func Convert(as []Address, unique *[]string) string {
	values := make([]string, 0, len(as))
	for _, a := range as {
		switch {
		case a.Address != "":
			ad := convertAddrSpec(a.Address)

			if a.Name == "" {
				values = append(values, ad)
			} else {
				values = append(values, encodeName(a.Name)+" <"+ad+">")
			}

			if unique != nil && !contains(*unique, ad) {
				*unique = append(*unique, ad)
			}

		case a.IsGroup:
			var members string
			if len(a.Group) > 0 {
				members = Convert(a.Group, unique)
			}
			values = append(values, encodeName(a.Name)+":"+strings.TrimSpace(members)+";")
		}
	}

	return strings.Join(values, ", ")
}

// Addresses returns the converted mailbox addresses found in the list,
// including group members, without duplicates.
func Addresses(as []Address) []string {
	var list []string
	Convert(as, &list)
	return list
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// convertAddrSpec encodes the local part as a Q word when it is not plain
// ASCII and converts the domain to punycode.
func convertAddrSpec(a string) string {
	at := strings.IndexRune(a, '@')
	if at < 0 {
		return a
	}

	local, domain := a[:at], a[at+1:]
	if domain == "" {
		return field.EncodeQ(local) + "@"
	}

	if ascii, err := idna.ToASCII(domain); err == nil {
		domain = ascii
	}

	return field.EncodeQ(local) + "@" + domain
}

func isWordName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == ' ', c == '\'':
		default:
			return false
		}
	}
	return true
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// encodeName leaves word-only names alone, quotes other printable ASCII names
// and turns anything else into a Q encoded word.
func encodeName(name string) string {
	switch {
	case isWordName(name):
		return name
	case isPrintableASCII(name):
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
		return `"` + r.Replace(name) + `"`
	default:
		return field.EncodeQ(name)
	}
}
