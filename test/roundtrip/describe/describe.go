// Package describe turns YAML descriptions of messages into message trees.
//
// A description looks like this:
//
//	content-type: multipart/mixed
//	date: Thu, 29 May 2014 16:31:45 +0000
//	headers:
//	  From: sterling@example.com
//	  To:
//	    - andrew@example.com
//	    - bob@example.com
//	  Subject: Hello
//	parts:
//	  - content-type: text/plain
//	    content: Hello World!
//	  - filename: logo.png
//	    content-file: logo.png
//
// Header fields keep the order they are given in. A field given a list of
// values is added once for each value.
package describe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
)

var (
	// ErrContentConflict is returned when a part names both inline content and
	// a content file.
	ErrContentConflict = errors.New("content and content-file are both set")

	// ErrBadHeaders is returned when the headers of a part are not a mapping
	// of names to a value or a list of values.
	ErrBadHeaders = errors.New("headers must map names to a value or a list of values")
)

// Part describes one node of a message tree.
type Part struct {
	ContentType  string  `yaml:"content-type"`
	Filename     string  `yaml:"filename"`
	Date         string  `yaml:"date"`
	Headers      Fields  `yaml:"headers"`
	Content      string  `yaml:"content"`
	ContentFile  string  `yaml:"content-file"`
	SkipEncoding bool    `yaml:"skip-encoding"`
	Parts        []*Part `yaml:"parts"`
}

// Fields is the ordered list of header fields of a part.
type Fields header.Pairs

// UnmarshalYAML reads a mapping of names to values, keeping the order of the
// document.
func (fs *Fields) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w", value.Line, ErrBadHeaders)
	}

	pairs := make(Fields, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			pairs = append(pairs, header.Pair{Key: key.Value, Value: val.Value})
		case yaml.SequenceNode:
			for _, v := range val.Content {
				if v.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: %w", v.Line, ErrBadHeaders)
				}
				pairs = append(pairs, header.Pair{Key: key.Value, Value: v.Value})
			}
		default:
			return fmt.Errorf("line %d: %w", val.Line, ErrBadHeaders)
		}
	}

	*fs = pairs
	return nil
}

// Load reads a description from r. Unknown keys are an error.
func Load(r io.Reader) (*Part, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Part
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("unable to read message description: %w", err)
	}

	return &p, nil
}

// LoadFile reads a description from the named file.
func LoadFile(path string) (*Part, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Builder builds message trees from descriptions.
type Builder struct {
	// Dir is the directory content files are relative to.
	Dir string

	// Options are passed to every node the builder creates.
	Options []message.Option
}

// Build creates the message tree for the description.
func (b *Builder) Build(p *Part) (*message.Node, error) {
	opts, err := b.nodeOptions(p)
	if err != nil {
		return nil, err
	}

	n := message.New(p.ContentType, opts...)
	if err := b.fill(n, p); err != nil {
		return nil, err
	}

	return n, nil
}

func (b *Builder) nodeOptions(p *Part) ([]message.Option, error) {
	opts := append([]message.Option{}, b.Options...)
	if p.Filename != "" {
		opts = append(opts, message.WithFilename(p.Filename))
	}

	if p.SkipEncoding {
		opts = append(opts, message.WithSkipContentEncoding(true))
	}

	if p.Date != "" {
		date, err := header.ParseTime(p.Date)
		if err != nil {
			return nil, err
		}
		opts = append(opts, message.WithDate(date))
	}

	return opts, nil
}

func (b *Builder) fill(n *message.Node, p *Part) error {
	n.AddHeaders(header.Pairs(p.Headers))

	if _, err := n.Header().GetTime(header.Date); err != nil && !errors.Is(err, header.ErrNoSuchField) {
		return fmt.Errorf("unable to use the Date field: %w", err)
	}

	switch {
	case p.Content != "" && p.ContentFile != "":
		return ErrContentConflict
	case p.Content != "":
		n.SetContent(p.Content)
	case p.ContentFile != "":
		path := p.ContentFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.Dir, path)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read content of part: %w", err)
		}
		n.SetContentBytes(content)
	}

	for _, cp := range p.Parts {
		opts, err := b.nodeOptions(cp)
		if err != nil {
			return err
		}

		if err := b.fill(n.CreateChild(cp.ContentType, opts...), cp); err != nil {
			return err
		}
	}

	return nil
}
