package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/walker"
)

var treeCmd = &cobra.Command{
	Use:   "tree description.yaml",
	Short: "Shows the outline of a described message",
	Args:  cobra.ExactArgs(1),
	RunE:  RunTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func RunTree(cmd *cobra.Command, args []string) error {
	m, err := loadMessage(args[0])
	if err != nil {
		return err
	}

	return outline(cmd.OutOrStdout()).Walk(m)
}

func outline(w io.Writer) walker.Parts {
	return func(depth, i int, part *message.Node) error {
		ct := part.ContentType()
		if ct == "" {
			ct = "(no content type)"
		}

		line := fmt.Sprintf("%s[%d] %s", strings.Repeat("  ", depth), part.ID(), ct)
		if fn := part.Filename(); fn != "" {
			line += " " + fn
		}
		if b, ok := part.Boundary(); ok {
			line += " boundary=" + b
		}
		if content, ok := part.Content(); ok {
			line += fmt.Sprintf(" (%d bytes)", len(content))
		}

		_, err := fmt.Fprintln(w, line)
		return err
	}
}
