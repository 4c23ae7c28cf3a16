package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Sink receives the finished document in a single hand-off.
type Sink interface {
	Deliver(doc string) error
	Name() string
}

type clipboardSink struct {
	unsupported bool
	write       func(string) error
}

func newClipboardSink() *clipboardSink {
	return &clipboardSink{unsupported: clipboard.Unsupported, write: clipboard.WriteAll}
}

func (s *clipboardSink) Deliver(doc string) error {
	if s.unsupported {
		return &SinkUnavailableError{
			Sink: s.Name(),
			Err:  errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)"),
		}
	}
	if err := s.write(doc); err != nil {
		return &SinkUnavailableError{Sink: s.Name(), Err: err}
	}
	return nil
}

func (s *clipboardSink) Name() string { return "clipboard" }

// writerSink writes the document to w in one call.
type writerSink struct {
	w io.Writer
}

func (s writerSink) Deliver(doc string) error {
	if _, err := io.WriteString(s.w, doc); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}

func (s writerSink) Name() string { return "stdout" }

// deliver hands doc to primary. If primary is unavailable the document goes
// to fallback instead, so it is never lost. It returns the sink that took it.
func deliver(doc string, primary, fallback Sink, logger *zap.Logger) (Sink, error) {
	err := primary.Deliver(doc)
	if err == nil {
		return primary, nil
	}

	var unavailable *SinkUnavailableError
	if !errors.As(err, &unavailable) || fallback == nil {
		return nil, err
	}
	logger.Warn("delivery failed, printing document instead",
		zap.String("sink", primary.Name()), zap.Error(err))
	if err := fallback.Deliver(doc); err != nil {
		return nil, err
	}
	return fallback, nil
}
