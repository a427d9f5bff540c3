package main

import (
	"fmt"
	"os"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer is the encoding handle shared across workers for one run.
// Implementations must be safe for concurrent CountTokens calls.
type Tokenizer interface {
	CountTokens(text string) int
	Name() string
	Close()
}

// TokenizerConfig selects and parameterizes a tokenizer backend.
type TokenizerConfig struct {
	Backend  string // "tiktoken" or "huggingface"
	Encoding string // tiktoken encoding name, e.g. cl100k_base
	Model    string // model name (tiktoken) or hub identifier (huggingface)
	File     string // path to a local tokenizer.json (huggingface)
}

const defaultEncoding = "cl100k_base"

// --- Tiktoken backend ---

type TiktokenWrapper struct {
	ttk  *tiktoken.Tiktoken
	name string
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Name() string { return w.name }

func (w *TiktokenWrapper) Close() {
	// tiktoken-go holds no resources that need releasing
}

// --- HuggingFace (sugarme) backend ---

type HFTokenizerWrapper struct {
	htk  *hf.Tokenizer
	name string
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: tokenizer failed to encode text: %v\n", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Name() string { return w.name }

func (w *HFTokenizerWrapper) Close() {
	// sugarme/tokenizer has no explicit release
}

// newTokenizer constructs the run's encoding handle. Construction failures
// are configuration errors and must surface before any file is processed.
func newTokenizer(cfg TokenizerConfig) (Tokenizer, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "tiktoken":
		return newTiktoken(cfg)
	case "huggingface":
		return newHuggingFace(cfg)
	default:
		return nil, fmt.Errorf("unsupported tokenizer backend %q (use tiktoken or huggingface)", cfg.Backend)
	}
}

func newTiktoken(cfg TokenizerConfig) (Tokenizer, error) {
	if cfg.Model != "" {
		tke, err := tiktoken.EncodingForModel(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("no tiktoken encoding for model %q: %w", cfg.Model, err)
		}
		return &TiktokenWrapper{ttk: tke, name: fmt.Sprintf("tiktoken[%s]", cfg.Model)}, nil
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = defaultEncoding
	}
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown tiktoken encoding %q: %w", encoding, err)
	}
	return &TiktokenWrapper{ttk: tke, name: encoding}, nil
}

func newHuggingFace(cfg TokenizerConfig) (Tokenizer, error) {
	if cfg.File != "" {
		htk, err := pretrained.FromFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", cfg.File, err)
		}
		return &HFTokenizerWrapper{htk: htk, name: fmt.Sprintf("huggingface[%s]", cfg.File)}, nil
	}

	model := cfg.Model
	if model == "" {
		model = "gpt2"
	}
	// CachedPath downloads tokenizer.json on first use and caches it.
	configPath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tokenizer for model %q: %w", model, err)
	}
	htk, err := pretrained.FromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %q: %w", model, err)
	}
	return &HFTokenizerWrapper{htk: htk, name: fmt.Sprintf("huggingface[%s]", model)}, nil
}
