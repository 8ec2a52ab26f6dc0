package message

import (
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/address"
)

// Envelope holds the SMTP sender and recipients of a message.
type Envelope struct {
	From string
	To   []string
}

// Envelope collects the sender and recipients from the fields of this node
// only, the same way they are converted for the header.
//
// The sender is the first address of the From field. Reply-To and Sender are
// used when no From field has been seen yet. The recipients are every address
// in To, Cc and Bcc, in order and without repeats. Bcc addresses are listed
// whether or not Bcc is written to the header.
func (n *Node) Envelope() Envelope {
	var env Envelope

	for _, f := range n.header.ListFields() {
		switch f.Name() {
		case header.ReplyTo, header.Sender:
			if env.From != "" {
				continue
			}
			fallthrough

		case header.From:
			if list := address.Addresses(address.Parse(f.Body())); len(list) > 0 {
				env.From = list[0]
			}

		case header.To, header.Cc, header.Bcc:
			address.Convert(address.Parse(f.Body()), &env.To)
		}
	}

	return env
}
