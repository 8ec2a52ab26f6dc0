package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-mbox"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/walk"
	"github.com/zostay/go-mimetree/test/roundtrip/describe"
)

var buildCmd = &cobra.Command{
	Use:   "build description.yaml",
	Short: "Builds the message described by a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  RunBuild,
}

var (
	buildOutput           string
	buildMbox             string
	buildStripAttachments bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "write the message to this file instead of stdout")
	buildCmd.Flags().StringVar(&buildMbox, "mbox", "", "append the message to this mbox file instead")
	buildCmd.Flags().BoolVar(&buildStripAttachments, "strip-attachments", false, "leave out parts that have a filename")
	rootCmd.AddCommand(buildCmd)
}

// loadMessage reads the description at path and builds it. Content files are
// found relative to the description.
func loadMessage(path string) (*message.Node, error) {
	p, err := describe.LoadFile(path)
	if err != nil {
		return nil, err
	}

	b := &describe.Builder{
		Dir:     filepath.Dir(path),
		Options: config.Options(),
	}

	return b.Build(p)
}

// stripAttachments removes every part with a filename, along with any
// multipart part left empty.
func stripAttachments(m *message.Node) (*message.Node, error) {
	return walk.AndTransform(
		func(part *message.Node, parents []*message.Node) (*message.Node, error) {
			if part.Filename() != "" {
				log.Debug().
					Int("id", part.ID()).
					Str("filename", part.Filename()).
					Msg("stripping attachment")
				return nil, walk.ErrSkip
			}
			return nil, walk.ErrCopy
		}, m)
}

func RunBuild(cmd *cobra.Command, args []string) error {
	m, err := loadMessage(args[0])
	if err != nil {
		return err
	}

	if buildStripAttachments {
		m, err = stripAttachments(m)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("nothing is left of %s after stripping attachments", args[0])
		}
	}

	switch {
	case buildMbox != "":
		return appendMbox(buildMbox, m)
	case buildOutput != "":
		return writeFile(buildOutput, m)
	default:
		_, err = m.WriteTo(cmd.OutOrStdout())
		return err
	}
}

func writeFile(path string, m *message.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := m.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func appendMbox(path string, m *message.Node) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	from := m.Envelope().From
	if from == "" {
		from = "MAILER-DAEMON"
	}

	mw := mbox.NewWriter(f)
	w, err := mw.CreateMessage(from, m.Date())
	if err != nil {
		return err
	}

	n, err := m.WriteTo(w)
	if err != nil {
		return err
	}

	log.Info().
		Str("mbox", path).
		Str("from", from).
		Int64("bytes", n).
		Msg("appended message")

	if err := mw.Close(); err != nil {
		return err
	}

	return f.Close()
}
