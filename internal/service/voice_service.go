package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

// minValidatedResults is how many results a shortened query needs to be accepted.
const minValidatedResults = 3

const keywordPrompt = `You are a food order assistant. Extract ONLY the food and drink items from the user's message.
Rules:
- Return ONLY the food keywords in English, nothing else
- Translate non-English food names to English when possible (e.g. "بيتزا" -> "pizza")
- Keep specific dish names (e.g. "margherita pizza", "chicken biryani")
- Remove filler words, greetings and non-food words
- Separate multiple items with spaces
- Return an empty string when there is no food item

Examples:
"I want to order a large pepperoni pizza" -> "pepperoni pizza"
"Can I get some chicken shawarma and hummus" -> "chicken shawarma hummus"
"أريد بيتزا وبرجر" -> "pizza burger"
"Bir porsiyon iskender istiyorum" -> "iskender"
"मुझे बिरयानी चाहिए" -> "biryani"`

// productCounter reports how many products a query finds. Implemented by SearchService.
type productCounter interface {
	Count(ctx context.Context, query string, loc models.Location) int
}

// VoiceService turns a transcribed sentence into a search query.
type VoiceService struct {
	chat       ChatProvider
	search     productCounter
	translator *TranslateService
}

// NewVoiceService creates a new VoiceService
func NewVoiceService(chat ChatProvider, search productCounter, translator *TranslateService) *VoiceService {
	return &VoiceService{chat: chat, search: search, translator: translator}
}

// Process extracts the search terms of req.Text, optionally checks that they
// find something, and phrases a "Searching for ..." message in req.Language.
func (s *VoiceService) Process(ctx context.Context, req *models.ProcessVoiceRequest) (*models.VoiceSearch, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, utils.ErrTextRequired
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	useAI := req.UseAI == nil || *req.UseAI

	var terms []string
	if useAI {
		terms = strings.Fields(s.extractWithAI(ctx, text))
	}
	if len(terms) == 0 {
		terms = ExtractKeywords(text)
	}
	query := strings.Join(terms, " ")

	out := &models.VoiceSearch{
		SearchTerms:  terms,
		SearchQuery:  query,
		Language:     language,
		OriginalText: req.Text,
		AIExtracted:  useAI,
	}

	if req.Validate && query != "" {
		s.validate(ctx, out, req.Location())
	}

	out.SearchMessage = s.translator.Translate(ctx, "Searching for "+out.SearchQuery, language)
	return out, nil
}

// extractWithAI asks the fast model for the food keywords. Failures return "".
func (s *VoiceService) extractWithAI(ctx context.Context, text string) string {
	out, err := s.chat.Chat(ctx, []models.ChatMessage{
		{Role: models.RoleSystem, Content: keywordPrompt},
		{Role: models.RoleUser, Content: text},
	}, ChatOptions{Temperature: 0.1, MaxTokens: 100, Fast: true})
	if err != nil {
		log.Warn().Err(err).Msg("AI keyword extraction failed, using stop-word extraction")
		return ""
	}

	out = strings.Trim(strings.TrimSpace(out), `"'`)
	log.Debug().Str("extracted", out).Str("text", text).Msg("AI keywords extracted")
	return out
}

// validate searches the query; when nothing is found it retries ever shorter
// prefixes of the terms and keeps the first with enough results.
func (s *VoiceService) validate(ctx context.Context, out *models.VoiceSearch, loc models.Location) {
	out.ResultCount = s.search.Count(ctx, out.SearchQuery, loc)
	out.Validated = out.ResultCount > 0
	if out.Validated || len(out.SearchTerms) < 2 {
		return
	}

	for i := len(out.SearchTerms) - 1; i >= 1; i-- {
		shorter := strings.Join(out.SearchTerms[:i], " ")
		n := s.search.Count(ctx, shorter, loc)
		if n >= minValidatedResults {
			out.SearchTerms = out.SearchTerms[:i]
			out.SearchQuery = shorter
			out.ResultCount = n
			out.Validated = true
			return
		}
	}
}
