package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emersion/go-mbox"
	"github.com/jhillyerd/enmime/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/param"
	"github.com/zostay/go-mimetree/message/transfer"
	"github.com/zostay/go-mimetree/message/walk"
)

var checkCmd = &cobra.Command{
	Use:   "check description.yaml...",
	Short: "Checks that described messages build cleanly",
	Long: `Builds each described message and checks that:

  * building it a second time gives the same output,
  * a MIME parser reads it back without errors,
  * every multipart part is closed by its boundary, and
  * the output matches the file given by --against, if any.

Comparing against a file only makes sense when the description fixes the date
and Message-Id and ROUNDTRIP_BASE_BOUNDARY is set.

With --mbox, the messages of an mbox file are read back instead.`,
	RunE: RunCheck,
}

var (
	checkAgainst string
	checkMbox    string
)

// errCheckFailed is returned once all messages have been checked and at least
// one had problems.
var errCheckFailed = errors.New("check failed")

func init() {
	checkCmd.Flags().StringVar(&checkAgainst, "against", "", "compare the built message to this file")
	checkCmd.Flags().StringVar(&checkMbox, "mbox", "", "read the messages of this mbox file back")
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if checkMbox != "" {
		return checkMboxFile(out, checkMbox)
	}

	if len(args) == 0 {
		return errors.New("no message descriptions given")
	}

	var expect string
	if checkAgainst != "" {
		b, err := os.ReadFile(checkAgainst)
		if err != nil {
			return err
		}
		expect = string(b)
	}

	failed := false
	for _, path := range args {
		m, err := loadMessage(path)
		if err != nil {
			return err
		}

		problems := checkMessage(m)
		if checkAgainst != "" {
			if d := diffLines(expect, m.Build()); d != "" {
				problems = append(problems, "output differs from "+checkAgainst+":\n"+d)
			}
		}

		if len(problems) == 0 {
			_, _ = fmt.Fprintf(out, "ok    %s\n", path)
			continue
		}

		failed = true
		_, _ = fmt.Fprintf(out, "FAIL  %s\n", path)
		for _, p := range problems {
			_, _ = fmt.Fprintf(out, "      %s\n", p)
		}
	}

	if failed {
		return errCheckFailed
	}

	return nil
}

// checkMessage builds the message and returns a description of everything
// wrong with the output.
func checkMessage(m *message.Node) []string {
	var problems []string

	first := m.Build()
	if d := diffLines(first, m.Build()); d != "" {
		problems = append(problems, "second build differs:\n"+d)
	}

	env, err := enmime.ReadEnvelope(strings.NewReader(first))
	if err != nil {
		return append(problems, fmt.Sprintf("output does not parse: %v", err))
	}

	for _, perr := range env.Errors {
		problems = append(problems, "parser: "+perr.Error())
	}

	if subject, ok := m.GetHeader("Subject"); ok && env.GetHeader("Subject") != subject {
		problems = append(problems,
			fmt.Sprintf("subject read back as %q, not %q", env.GetHeader("Subject"), subject))
	}

	_ = walk.AndProcessLeaves(
		func(part *message.Node, parents []*message.Node) error {
			if p := checkContent(part); p != "" {
				problems = append(problems, p)
			}
			return nil
		}, m)

	_ = walk.AndProcessMultipart(
		func(part *message.Node, parents []*message.Node) error {
			b, _ := part.Boundary()
			if !strings.Contains(first, "\r\n--"+b+"--\r\n") {
				problems = append(problems,
					fmt.Sprintf("part %d is not closed by boundary %q", part.ID(), b))
			}
			return nil
		}, m)

	return problems
}

// checkContent decodes the body of a leaf part as written and compares it to
// the content that was set. Line breaks and flowed line wrapping are not
// counted as differences.
func checkContent(part *message.Node) string {
	content, ok := part.Content()
	if !ok || part.SkipContentEncoding() {
		return ""
	}

	_, body, _ := strings.Cut(part.Build(), "\r\n\r\n")
	decoded, err := io.ReadAll(transfer.ApplyTransferDecoding(part.Header(), strings.NewReader(body)))
	if err != nil {
		return fmt.Sprintf("part %d does not decode: %v", part.ID(), err)
	}

	got := string(decoded)
	if ct, ok := part.GetHeader(header.ContentType); ok {
		if format, _ := param.Parse(ct).Parameter(param.Format); strings.EqualFold(format, "flowed") {
			got = transfer.Unflow(got)
		}
	}

	normalize := func(s string) string {
		return strings.TrimRight(transfer.NormalizeBreaks(s), "\r\n")
	}

	if normalize(got) != normalize(string(content)) {
		return fmt.Sprintf("part %d content reads back differently:\n%s",
			part.ID(), diffLines(normalize(string(content)), normalize(got)))
	}

	return ""
}

func checkMboxFile(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	r := mbox.NewReader(f)
	count, bad := 0, 0
	for {
		mr, err := r.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}

		count++
		env, err := enmime.ReadEnvelope(mr)
		if err != nil {
			bad++
			_, _ = fmt.Fprintf(out, "FAIL  message %d: %v\n", count, err)
			continue
		}

		if len(env.Errors) > 0 {
			bad++
			for _, perr := range env.Errors {
				_, _ = fmt.Fprintf(out, "FAIL  message %d: %v\n", count, perr)
			}
			continue
		}

		log.Debug().
			Int("message", count).
			Str("subject", env.GetHeader("Subject")).
			Msg("message read back")
	}

	_, _ = fmt.Fprintf(out, "%d messages, %d with problems\n", count, bad)
	if bad > 0 {
		return errCheckFailed
	}

	return nil
}
