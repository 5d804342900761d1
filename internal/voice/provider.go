// Package voice optionally polishes the spoken phrasing of an answer
// with an LLM. The structured answer is never touched; a polish failure
// falls back to the raw phrasing.
package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/ornolfur/spyrja/internal/model"
)

// Provider defines the interface for voice-polish backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Polish rewrites the raw spoken answer into a more natural
	// phrasing, staying in Icelandic and inventing nothing.
	Polish(ctx context.Context, question, rawVoice string) (string, error)

	// IsAvailable checks if the provider is properly configured and
	// accessible
	IsAvailable(ctx context.Context) bool
}

// NewProvider creates a voice provider based on configuration.
// An empty provider name disables polishing and returns nil.
func NewProvider(cfg model.VoiceConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown voice provider: %s (supported: openai)", cfg.Provider)
	}
}

// buildPrompt constructs the polish prompt. The answer content is fixed;
// the model may only adjust phrasing.
func buildPrompt(question, rawVoice string) string {
	return fmt.Sprintf(`Spurning: %s
Svar: %s

Umorðaðu svarið að ofan svo það hljómi eðlilega í töluðu máli. Svaraðu á íslensku, í einni setningu, og breyttu engum staðreyndum, nöfnum eða titlum. Skilaðu aðeins umorðaða svarinu.`, question, rawVoice)
}
