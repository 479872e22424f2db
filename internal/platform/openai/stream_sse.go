package openai

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// streamSSE splits a text/event-stream body into (event, data) pairs.
// Multiple data lines of one event are joined with "\n".
func streamSSE(r io.Reader, onEvent func(event string, data string) error) error {
	br := bufio.NewReader(r)
	var (
		eventName string
		dataLines []string
	)

	flush := func() error {
		if len(dataLines) == 0 {
			eventName = ""
			return nil
		}
		data := strings.Join(dataLines, "\n")
		ev := eventName
		dataLines = nil
		eventName = ""
		if onEvent == nil {
			return nil
		}
		return onEvent(ev, data)
	}

	handle := func(line string) error {
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			return flush()
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
		return nil
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if line != "" {
				if hErr := handle(line); hErr != nil {
					return hErr
				}
			}
			return flush()
		}
		if err := handle(line); err != nil {
			return err
		}
	}
}
