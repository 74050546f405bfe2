package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/clients/openai"
	"github.com/recuerdalab/memoryprompts-backend/internal/logger"
)

// KeywordService derives search keywords for one prompt text. Keyword
// quality is best-effort: any upstream or decode failure yields an empty
// list and a warning, never an error, so a bad keyword call can never sink
// the batch it belongs to.
type KeywordService interface {
	Extract(ctx context.Context, text string) []string
}

type keywordService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewKeywordService(log *logger.Logger, ai openai.Client) KeywordService {
	serviceLog := log.With("service", "KeywordService")
	return &keywordService{log: serviceLog, ai: ai}
}

const keywordSystemPrompt = "Eres un extractor de palabras clave útiles para clasificación."

func keywordInstruction(text string) string {
	return fmt.Sprintf(`Extrae 3 a 5 palabras clave relevantes del siguiente enunciado. Las palabras clave deben ser sustantivos o conceptos importantes. Devuélvelas como un arreglo JSON.

Texto: %q`, text)
}

// Low temperature: keyword extraction favors determinism over variety.
const keywordTemperature = 0.3

func (s *keywordService) Extract(ctx context.Context, text string) []string {
	raw, err := s.ai.ChatText(ctx, keywordSystemPrompt, keywordInstruction(text), keywordTemperature)
	if err != nil {
		s.log.Warn("Keyword extraction call failed, storing empty keywords", "text", text, "error", err)
		return []string{}
	}

	keywords, ok := decodeStringArray(raw)
	if !ok {
		s.log.Warn("Keyword response was not a JSON string array, storing empty keywords", "code", apierr.CodeParse, "text", text, "response", raw)
		return []string{}
	}
	return keywords
}

// decodeStringArray is the decode-or-default combinator for model output:
// attempt a strict JSON string-array decode and report failure instead of
// propagating it. A fenced ```json block around the array is tolerated.
func decodeStringArray(raw string) ([]string, bool) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var out []string
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, false
	}
	if out == nil {
		out = []string{}
	}
	return out, true
}
