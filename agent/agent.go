package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Session is a conversation about a returns report.
type Session struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
}

// New creates a session with the analyst, reading the follow-up questions from r.
func New(w io.Writer, r io.Reader, analyst *Expert) *Session {
	return &Session{w: w, r: bufio.NewReader(r), Expert: analyst}
}

// Start creates the Gemini chat.
func (s *Session) Start(ctx context.Context, client *genai.Client) error {
	return s.Expert.Start(ctx, client)
}

// Comment asks the analyst to comment a markdown report.
func (s *Session) Comment(ctx context.Context, report string) (string, error) {
	content, err := s.Expert.Ask(ctx, &genai.Part{Text: "Comment this portfolio returns report:\n\n" + report})
	if err != nil {
		return "", err
	}
	return Text(content), nil
}

const prompt = "rentab> "

// Run answers the follow-up questions until "bye" or the end of input.
func (s *Session) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.w, prompt)
		input, err := s.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil
		input = strings.TrimSpace(input)
		if input == "bye" || (eof && input == "") {
			fmt.Fprintln(s.w)
			return nil
		}
		if input != "" {
			content, err := s.Expert.Ask(ctx, &genai.Part{Text: input})
			if err != nil {
				return err
			}
			fmt.Fprintln(s.w, Text(content))
		}
		if eof {
			return nil
		}
	}
}
