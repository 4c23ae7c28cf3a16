package main

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const defaultTiktokenModel = "gpt-4o"

// Tokenizer counts tokens in the finished document.
type Tokenizer interface {
	CountTokens(text string) int
}

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

// loadTiktoken returns the encoding for model, falling back to the default
// model when it is unknown. Encodings may be downloaded on first use.
func loadTiktoken(model string, logger *zap.Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("unknown tiktoken model, using default",
			zap.String("model", model), zap.String("default", defaultTiktokenModel), zap.Error(err))
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}
