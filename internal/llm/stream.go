package llm

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// StreamParser decodes the Server-Sent Events stream OpenRouter sends for
// streamed completions.
type StreamParser struct {
	scanner *bufio.Scanner
}

// NewStreamParser creates a parser over r.
func NewStreamParser(r io.Reader) *StreamParser {
	return &StreamParser{scanner: bufio.NewScanner(r)}
}

// Drain reads content chunks until the stream ends and forwards them to out.
func (p *StreamParser) Drain(out chan<- string) error {
	for {
		content, done, err := p.next()
		if err != nil {
			return err
		}
		if content != "" {
			out <- content
		}
		if done {
			return nil
		}
	}
}

// next returns the next content chunk. done is set on the [DONE] marker, a
// finish_reason, or end of stream. Lines that are not valid event payloads
// (comments, keep-alives) are skipped.
func (p *StreamParser) next() (content string, done bool, err error) {
	for p.scanner.Scan() {
		line := p.scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return "", true, nil
		}

		var resp Response
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			continue
		}
		if len(resp.Choices) == 0 {
			continue
		}

		choice := resp.Choices[0]
		content := choice.Delta.Content
		if content == "" {
			content = choice.Message.Content
		}
		return content, choice.FinishReason != "", nil
	}

	if err := p.scanner.Err(); err != nil {
		return "", false, err
	}
	return "", true, nil
}
