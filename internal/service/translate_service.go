package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

// Phrase types with pre-translated texts.
const (
	PhraseGreeting  = "greeting"
	PhraseNoResults = "no_results"
)

// languages lists the supported UI languages in display order.
var languages = []struct{ code, name string }{
	{"en", "English"}, {"ar", "Arabic"}, {"fr", "French"}, {"es", "Spanish"}, {"de", "German"},
	{"it", "Italian"}, {"pt", "Portuguese"}, {"ru", "Russian"}, {"zh", "Chinese"}, {"ja", "Japanese"},
	{"ko", "Korean"}, {"hi", "Hindi"}, {"tr", "Turkish"}, {"nl", "Dutch"}, {"pl", "Polish"},
	{"sv", "Swedish"}, {"da", "Danish"}, {"no", "Norwegian"}, {"fi", "Finnish"}, {"cs", "Czech"},
}

var phrases = map[string]map[string]string{
	PhraseGreeting: {
		"en": "What would you like to order today?",
		"ar": "ماذا تريد أن تطلب اليوم؟",
		"fr": "Que souhaitez-vous commander aujourd'hui?",
		"es": "¿Qué te gustaría pedir hoy?",
		"de": "Was möchten Sie heute bestellen?",
		"it": "Cosa vorresti ordinare oggi?",
		"pt": "O que você gostaria de pedir hoje?",
		"ru": "Что бы вы хотели заказать сегодня?",
		"zh": "你今天想点什么？",
		"ja": "今日は何を注文しますか？",
		"ko": "오늘 무엇을 주문하시겠습니까?",
		"hi": "आज आप क्या ऑर्डर करना चाहेंगे?",
		"tr": "Bugün ne sipariş etmek istersiniz?",
	},
	PhraseNoResults: {
		"en": "No results found. Try something else!",
		"ar": "لم يتم العثور على نتائج. جرب شيئًا آخر!",
		"fr": "Aucun résultat trouvé. Essayez autre chose!",
		"es": "No se encontraron resultados. ¡Prueba otra cosa!",
		"de": "Keine Ergebnisse gefunden. Versuchen Sie etwas anderes!",
		"it": "Nessun risultato trovato. Prova qualcos'altro!",
		"pt": "Nenhum resultado encontrado. Tente outra coisa!",
		"ru": "Ничего не найдено. Попробуйте что-то другое!",
		"zh": "没有找到结果。试试别的吧！",
		"ja": "結果が見つかりませんでした。他のものを試してください！",
		"ko": "결과를 찾을 수 없습니다. 다른 것을 시도해 보세요!",
		"hi": "कोई परिणाम नहीं मिला। कुछ और आज़माएं!",
		"tr": "Sonuç bulunamadı. Başka bir şey deneyin!",
	},
}

// LanguageName returns the English name of a language code, or the code itself.
func LanguageName(code string) string {
	for _, l := range languages {
		if l.code == code {
			return l.name
		}
	}
	return code
}

// TranslateService translates short UI phrases, preferring the built-in table
// and falling back to the fast chat model.
type TranslateService struct {
	chat ChatProvider
}

// NewTranslateService creates a new TranslateService
func NewTranslateService(chat ChatProvider) *TranslateService {
	return &TranslateService{chat: chat}
}

// Translate returns text in language. English and empty targets pass through;
// any failure returns text unchanged.
func (s *TranslateService) Translate(ctx context.Context, text, language string) string {
	if language == "" || language == "en" || strings.TrimSpace(text) == "" {
		return text
	}

	out, err := s.chat.Chat(ctx, []models.ChatMessage{
		{Role: models.RoleSystem, Content: fmt.Sprintf("Translate to %s. Return ONLY the translation, nothing else. Keep numbers as-is.", LanguageName(language))},
		{Role: models.RoleUser, Content: text},
	}, ChatOptions{Temperature: 0.1, MaxTokens: 150, Fast: true})
	if err != nil {
		log.Warn().Err(err).Str("language", language).Msg("Translation failed, using original text")
		return text
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return text
	}
	return out
}

// TranslateRequest resolves a translate call: a known phrase type uses the
// pre-translated text when available, otherwise its English text is
// translated; free text is translated as is.
func (s *TranslateService) TranslateRequest(ctx context.Context, req *models.TranslateRequest) (string, error) {
	language := req.Language
	if language == "" {
		language = "en"
	}

	if table, ok := phrases[req.Type]; ok {
		if translated, ok := table[language]; ok {
			return translated, nil
		}
		return s.Translate(ctx, table["en"], language), nil
	}
	if req.Text == "" {
		return "", utils.ErrTextRequired
	}
	return s.Translate(ctx, req.Text, language), nil
}

// Phrases returns every pre-translated phrase in language, English when missing.
func (s *TranslateService) Phrases(language string) map[string]string {
	out := make(map[string]string, len(phrases))
	for key, table := range phrases {
		if v, ok := table[language]; ok {
			out[key] = v
		} else {
			out[key] = table["en"]
		}
	}
	return out
}

// Languages lists the supported languages.
func (s *TranslateService) Languages() []models.Language {
	out := make([]models.Language, len(languages))
	for i, l := range languages {
		_, pre := phrases[PhraseGreeting][l.code]
		out[i] = models.Language{Code: l.code, Name: l.name, HasPreTranslated: pre}
	}
	return out
}
