package message

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/param"
	"github.com/zostay/go-mimetree/message/mimetype"
)

// Node is one part of a MIME message. A node has its own header and either
// content or child parts (a multipart node may have both, in which case the
// content is written as the preamble). The root node of a tree is the whole
// message.
//
// Every node belongs to exactly one tree. The root of the tree hands out the
// ids of its nodes and holds the base boundary they share. A Node is not safe
// for concurrent use.
type Node struct {
	id       int
	root     *Node
	parent   *Node
	children []*Node

	header header.Header

	content    []byte
	hasContent bool
	isText     bool

	filename string

	// only meaningful on the root of a tree
	counter      int
	baseBoundary string

	// boundary is remembered once used and only forgotten when the node
	// gets a new id
	boundary string

	// the local part of the generated Message-Id
	messageID string

	includeBcc   bool
	skipEncoding bool
	date         time.Time

	logger zerolog.Logger
}

// Option configures a new Node.
type Option func(*Node)

// WithFilename sets the filename of the node. The filename is written as the
// filename parameter of the Content-Disposition header. When the node is
// created without a content type, the type is guessed from the extension.
func WithFilename(filename string) Option {
	return func(n *Node) {
		n.filename = filename
	}
}

// WithBaseBoundary sets the value shared by the boundaries of every node in
// the tree. It only matters on the root node. By default it is made from the
// creation time and a random number.
func WithBaseBoundary(base string) Option {
	return func(n *Node) {
		n.baseBoundary = base
	}
}

// WithIncludeBccInHeader causes Bcc fields to be written by Build. Normally
// they only show up in the Envelope.
func WithIncludeBccInHeader(include bool) Option {
	return func(n *Node) {
		n.includeBcc = include
	}
}

// WithSkipContentEncoding causes the content to be written exactly as given,
// without applying the transfer encoding. This is useful for content that is
// already encoded or that is a template filled in later.
func WithSkipContentEncoding(skip bool) Option {
	return func(n *Node) {
		n.skipEncoding = skip
	}
}

// WithDate sets the creation date of the node, which is used for the Date
// header of a root node without one.
func WithDate(date time.Time) Option {
	return func(n *Node) {
		n.date = date
	}
}

// WithLogger sets the logger the node writes debug messages to. Nodes are
// silent by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Node) {
		n.logger = logger
	}
}

// New creates a node that is the root of a new tree. The content type may be
// empty. If it is and a filename is given, the type is detected from the
// extension of the filename.
func New(contentType string, opts ...Option) *Node {
	n := &Node{
		date:   time.Now(),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.baseBoundary == "" {
		n.baseBoundary = newBaseBoundary(n.date)
	}

	n.root = n
	n.counter++
	n.id = n.counter

	if n.filename != "" && contentType == "" {
		contentType = mimetype.DetectFilename(n.filename)
		n.logger.Debug().
			Str("filename", n.filename).
			Str("content-type", contentType).
			Msg("detected content type from filename")
	}

	if contentType != "" {
		n.header.Set(header.ContentType, contentType)
	}

	return n
}

// CreateChild creates a new node and appends it as the last child of this
// node. The child writes to the same logger as this node unless the options
// say otherwise.
func (n *Node) CreateChild(contentType string, opts ...Option) *Node {
	opts = append([]Option{WithLogger(n.logger)}, opts...)
	return n.AppendChild(New(contentType, opts...))
}

// AppendChild appends the given node as the last child of this node and
// returns it. The child is first removed from its current parent. When it
// comes from another tree, the child and all its descendants join this tree
// and get new ids from its root.
//
// Appending a node to itself or to one of its own descendants does nothing.
func (n *Node) AppendChild(child *Node) *Node {
	if child == n || child.isAncestorOf(n) {
		return child
	}

	sameTree := child.root == n.root
	child.detach()
	if !sameTree {
		child.adopt(n.root)
	}

	child.parent = n
	n.children = append(n.children, child)

	return child
}

// Replace puts the other node in the place of this one. The other node takes
// over the id, parent and root of this node, and this node becomes the root
// of its own tree. It returns the other node.
//
// Nothing happens if this node has no parent or if other is this node or one
// of its ancestors.
func (n *Node) Replace(other *Node) *Node {
	if other == n || n.parent == nil || other.isAncestorOf(n) {
		return other
	}

	sameTree := other.root == n.root
	other.detach()

	parent := n.parent
	ix := parent.indexOf(n)
	if ix < 0 {
		return other
	}

	other.root = n.root
	other.parent = parent
	if !sameTree || other.id != n.id {
		other.id = n.id
		other.boundary = ""
	}
	if !sameTree {
		for _, c := range other.children {
			c.adopt(n.root)
		}
	}
	parent.children[ix] = other

	n.parent = nil
	n.becomeRoot()

	return other
}

// Remove detaches this node from its parent. The node keeps its id and becomes
// the root of a new tree made of itself and its descendants. It returns this
// node.
func (n *Node) Remove() *Node {
	if n.parent == nil {
		return n
	}

	n.detach()
	n.becomeRoot()

	return n
}

// Clone returns a copy of the node as the root of a new tree. The copy has
// the header, content, filename and settings of this node but no children.
// It keeps the base boundary of this tree.
func (n *Node) Clone() *Node {
	c := &Node{
		header:       *n.header.Clone(),
		content:      append([]byte(nil), n.content...),
		hasContent:   n.hasContent,
		isText:       n.isText,
		filename:     n.filename,
		baseBoundary: n.root.baseBoundary,
		includeBcc:   n.includeBcc,
		skipEncoding: n.skipEncoding,
		date:         n.date,
		logger:       n.logger,
	}

	c.root = c
	c.counter = 1
	c.id = 1

	return c
}

// detach drops the node from the children of its parent, searching from the
// end. The root is left alone.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}

	cs := n.parent.children
	for i := len(cs) - 1; i >= 0; i-- {
		if cs[i] == n {
			n.parent.children = append(cs[:i:i], cs[i+1:]...)
			break
		}
	}

	n.parent = nil
}

// becomeRoot turns a parentless node into the root of its own tree.
func (n *Node) becomeRoot() {
	n.root = n
	if n.counter < n.id {
		n.counter = n.id
	}

	for _, c := range n.children {
		c.adopt(n)
	}
}

// adopt moves the node and all its descendants into the tree of the given
// root, giving each of them a new id.
func (n *Node) adopt(root *Node) {
	root.counter++
	n.root = root
	n.id = root.counter
	n.boundary = ""

	for _, c := range n.children {
		c.adopt(root)
	}
}

func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// ID returns the id of the node, which is unique within its tree.
func (n *Node) ID() int {
	return n.id
}

// Root returns the root of the tree the node belongs to.
func (n *Node) Root() *Node {
	return n.root
}

// IsRoot returns true if the node is the root of its tree.
func (n *Node) IsRoot() bool {
	return n.root == n
}

// Parent returns the parent of the node or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child parts of the node in order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Filename returns the filename of the node.
func (n *Node) Filename() string {
	return n.filename
}

// SetFilename sets the filename of the node. It does not change the content
// type.
func (n *Node) SetFilename(filename string) *Node {
	n.filename = filename
	return n
}

// BaseBoundary returns the base boundary shared by the tree.
func (n *Node) BaseBoundary() string {
	return n.root.baseBoundary
}

// Date returns the creation date of the node.
func (n *Node) Date() time.Time {
	return n.date
}

// IncludeBccInHeader returns true if Bcc fields are written by Build.
func (n *Node) IncludeBccInHeader() bool {
	return n.includeBcc
}

// SetIncludeBccInHeader sets whether Bcc fields are written by Build.
func (n *Node) SetIncludeBccInHeader(include bool) *Node {
	n.includeBcc = include
	return n
}

// SkipContentEncoding returns true if the content is written without transfer
// encoding.
func (n *Node) SkipContentEncoding() bool {
	return n.skipEncoding
}

// SetSkipContentEncoding sets whether the content is written without transfer
// encoding.
func (n *Node) SetSkipContentEncoding(skip bool) *Node {
	n.skipEncoding = skip
	return n
}

func (n *Node) contentTypeValue() (*param.Value, bool) {
	ct, ok := n.GetHeader(header.ContentType)
	if !ok {
		return nil, false
	}
	return param.Parse(ct), true
}

// ContentType returns the lowercased media type of the Content-Type header or
// an empty string if there is none.
func (n *Node) ContentType() string {
	if pv, ok := n.contentTypeValue(); ok {
		return strings.ToLower(pv.MediaType())
	}
	return ""
}

// IsMultipart returns true if the Content-Type header names a multipart type.
func (n *Node) IsMultipart() bool {
	pv, ok := n.contentTypeValue()
	return ok && isMultipart(pv)
}

func isMultipart(pv *param.Value) bool {
	return strings.EqualFold(pv.Type(), "multipart")
}

// Boundary returns the boundary used between the child parts of a multipart
// node. The boundary parameter of the Content-Type header is used when it is
// set. Otherwise one is generated from the node id and the base boundary of
// the tree. Either way it is remembered, so it stays the same from one build
// to the next.
//
// The second value is false when the node is not multipart.
func (n *Node) Boundary() (string, bool) {
	pv, ok := n.contentTypeValue()
	if !ok || !isMultipart(pv) {
		return "", false
	}

	return n.resolveBoundary(pv), true
}

func (n *Node) resolveBoundary(pv *param.Value) string {
	switch {
	case pv.Boundary() != "":
		n.boundary = pv.Boundary()
	case n.boundary == "":
		n.boundary = GenerateBoundary(n.id, n.root.baseBoundary)
		n.logger.Debug().
			Int("node", n.id).
			Str("boundary", n.boundary).
			Msg("generated multipart boundary")
	}

	return n.boundary
}

// SetContent sets text content for the node. Text content containing
// non-ASCII characters gets a charset=utf-8 parameter on a text/* content
// type. Setting empty text removes the content.
func (n *Node) SetContent(content string) *Node {
	n.content = []byte(content)
	n.hasContent = content != ""
	n.isText = true
	return n
}

// SetContentBytes sets binary content for the node. A nil slice removes the
// content.
func (n *Node) SetContentBytes(content []byte) *Node {
	n.content = content
	n.hasContent = content != nil
	n.isText = false
	return n
}

// Content returns the content of the node. The second value is false when
// the node has no content.
func (n *Node) Content() ([]byte, bool) {
	return n.content, n.hasContent
}

// HasContent returns true when content has been set on the node.
func (n *Node) HasContent() bool {
	return n.hasContent
}

// Header returns the header of the node for direct access.
func (n *Node) Header() *header.Header {
	return &n.header
}

// SetHeader sets a header field, replacing the first field with the same name
// and removing any others.
func (n *Node) SetHeader(key, value string) *Node {
	n.header.Set(key, value)
	return n
}

// SetHeaders calls SetHeader for every field given.
func (n *Node) SetHeaders(fs header.Fields) *Node {
	n.header.SetFields(fs)
	return n
}

// AddHeader appends a header field, keeping any other field of the same name.
func (n *Node) AddHeader(key, value string) *Node {
	n.header.Add(key, value)
	return n
}

// AddHeaders calls AddHeader for every field given.
func (n *Node) AddHeaders(fs header.Fields) *Node {
	n.header.AddFields(fs)
	return n
}

// GetHeader returns the value of the first header field with the given name.
func (n *Node) GetHeader(key string) (string, bool) {
	v, err := n.header.Get(key)
	return v, err == nil
}
