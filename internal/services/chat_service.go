package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	mem "edupath/pkg/memcache"
	"edupath/pkg/utils"
)

const rolePrompt = `
You are CareerBot, a smart and friendly AI-powered Career & Education Advisor for Indian students in Class 10th and 12th. 
Your role is to guide students, parents, and educators by:
- Suggesting suitable streams (Science, Commerce, Arts, Vocational) after Class 10.
- Explaining career pathways and higher education options after Class 12.
- Mapping degree courses (B.Sc., B.Com., B.A., BBA, etc.) to potential jobs, government exams, and future prospects.
- Recommending skill development, certifications, and scholarships for students.
- Providing clear, short, and student-friendly answers.
- Supporting multi-language queries (but default to English if not specified).
- Avoiding generic 'Google it' type answers; always provide contextual, practical guidance.
- If unsure, give a helpful direction (e.g., "You can check the government's scholarship portal at …") instead of refusing.

Tone: Be supportive, motivating, and practical, like a career counselor who understands student confusion. 
Keep answers concise but informative (2–5 sentences max).
`

const (
	FallbackAnswer = "I'm currently having trouble connecting to the AI service. Here are some general tips:\n\n" +
		"1. For career guidance, consider taking our career assessment quiz.\n" +
		"2. Explore our college finder to discover institutions that match your interests.\n" +
		"3. Check back later when the AI service is available for personalized advice."

	EmptyAnswer = "I'm sorry, I couldn't process your request. Please try again."
)

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"bn": "Bengali",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"ur": "Urdu",
	"or": "Odia",
	"as": "Assamese",
}

// LanguageName maps a language code to its name; unknown codes are returned as-is.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// BuildPrompt fills the role prompt for one user message.
func BuildPrompt(message, language string) string {
	var b strings.Builder
	b.WriteString(rolePrompt)
	if language != "en" {
		b.WriteString("\nPlease answer only in ")
		b.WriteString(LanguageName(language))
		b.WriteString(". Do not use English words. If you know the script, use it.")
	}
	b.WriteString("\nUser: ")
	b.WriteString(message)
	b.WriteString("\nCareerBot:")
	return b.String()
}

type ChatServiceInterface interface {
	Ask(ctx context.Context, message, language string) (string, error)
}

type ChatService struct {
	model    utils.ChatModel
	cache    mem.TTLStore
	timeout  time.Duration
	cacheTTL time.Duration
	sf       singleflight.Group
	log      *zap.Logger
}

// NewChatService accepts a nil model; every question then gets the fallback answer.
func NewChatService(model utils.ChatModel, cache mem.TTLStore, timeout, cacheTTL time.Duration, log *zap.Logger) ChatServiceInterface {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChatService{
		model:    model,
		cache:    cache,
		timeout:  timeout,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Ask never fails once the message is valid: model errors turn into the
// fallback answer.
func (s *ChatService) Ask(ctx context.Context, message, language string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", utils.ErrMessageRequired
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = "en"
	}

	key := utils.CacheKey("chat", language, message)
	if answer, ok := s.cached(ctx, key); ok {
		return answer, nil
	}

	v, _, _ := s.sf.Do(key, func() (interface{}, error) {
		if answer, ok := s.cached(ctx, key); ok {
			return answer, nil
		}
		return s.generate(ctx, key, message, language), nil
	})
	return v.(string), nil
}

func (s *ChatService) generate(ctx context.Context, key, message, language string) string {
	if s.model == nil {
		s.log.Warn("Chat model not configured, returning fallback answer")
		return FallbackAnswer
	}

	// shared by every caller waiting on this key, so it must outlive any one request
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := time.Now()
	answer, err := s.model.Generate(callCtx, BuildPrompt(message, language))
	if err != nil {
		s.log.Error("Chat model call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return FallbackAnswer
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return EmptyAnswer
	}

	if ttl := s.ttlWithJitter(); ttl > 0 {
		if err := s.cache.Set(ctx, key, answer, ttl); err != nil {
			s.log.Warn("Failed to cache chat answer", zap.Error(err))
		}
	}
	return answer
}

func (s *ChatService) cached(ctx context.Context, key string) (string, bool) {
	if s.cacheTTL <= 0 {
		return "", false
	}
	answer, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("Chat cache lookup failed", zap.Error(err))
		return "", false
	}
	return answer, ok
}

func (s *ChatService) ttlWithJitter() time.Duration {
	if s.cacheTTL <= 0 {
		return 0
	}
	jitterMax := int64(s.cacheTTL) / 10
	return s.cacheTTL + time.Duration(rand.Int64N(jitterMax+1))
}
