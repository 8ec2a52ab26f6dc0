// Package message is the heart of this library. It provides the Node, which
// is one part of a MIME message, and the tools for putting a tree of nodes
// together and turning it into a strictly correct RFC 2822 message.
//
// You start with a root node, which is the message itself. Child parts are
// added to multipart nodes with CreateChild or AppendChild:
//
//	msg := message.New("multipart/mixed")
//	msg.SetHeader("From", "Sterling <sterling@example.com>")
//	msg.SetHeader("To", "andrew@example.com")
//	msg.SetHeader("Subject", "Your files")
//
//	msg.CreateChild("text/plain").SetContent("Here they are.")
//	msg.CreateChild("", message.WithFilename("report.pdf")).
//		SetContentBytes(pdf)
//
//	fmt.Print(msg.Build())
//
// Building works out the details you would rather not think about. Header
// fields are encoded and folded, each part gets a Content-Transfer-Encoding
// suited to its content, multipart boundaries are generated, attachments get
// a Content-Disposition and the root gets the Date, Message-Id and
// MIME-Version fields if you did not set them. The Envelope method gives you
// the sender and recipients to hand to your mail transport.
//
// Nothing in here returns an error. Values that cannot be parsed are written
// as well as they can be and empty fields are left out. If you need to
// validate addresses or content types, do so before you build.
package message
