package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_client.go -package=mocks pagemark/internal/service ChatClient,CredentialStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_definition_service.go -package=mocks -mock_names=DefinitionService=MockDefinitionService pagemark/internal/service DefinitionService

import (
	"context"
	"errors"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"pagemark/internal/contextutil"
	"pagemark/internal/llm"
)

const (
	definitionSystemPrompt = "You are a helpful assistant that provides clear, concise definitions. " +
		"Respond with just the definition in 1-2 sentences, no extra formatting."
	missingKeyMessage = "API key not configured. Please set it in the extension popup."
)

// ChatClient is an interface for chat completion APIs.
// This interface is defined from the service layer's perspective (consumer-first).
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// CredentialStore reads the operator-supplied definition credential.
type CredentialStore interface {
	APIKey(ctx context.Context) (string, error)
}

// DefinitionCache remembers definitions for the lifetime of one page. It is
// safe for concurrent use.
type DefinitionCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewDefinitionCache creates an empty cache.
func NewDefinitionCache() *DefinitionCache {
	return &DefinitionCache{entries: make(map[string]string)}
}

// Get returns the cached definition of text.
func (c *DefinitionCache) Get(text string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.entries[text]
	return def, ok
}

// Put stores the definition of text.
func (c *DefinitionCache) Put(text, definition string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[text] = definition
}

// Len returns the number of cached definitions.
func (c *DefinitionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// DefinitionConfig holds the request settings for definitions.
type DefinitionConfig struct {
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	// FallbackAPIKey is used when no credential has been stored.
	FallbackAPIKey string
}

// DefinitionService provides short definitions of selected text.
type DefinitionService interface {
	// Define returns the definition of text. cache may be nil; successes
	// are added to it and never evicted.
	Define(ctx context.Context, cache *DefinitionCache, text string) (string, error)
}

// definitionService implements DefinitionService.
type definitionService struct {
	client ChatClient
	creds  CredentialStore
	cfg    DefinitionConfig
	policy *bluemonday.Policy
}

// NewDefinitionService creates a new DefinitionService.
func NewDefinitionService(client ChatClient, creds CredentialStore, cfg DefinitionConfig) DefinitionService {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 100
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	return &definitionService{
		client: client,
		creds:  creds,
		cfg:    cfg,
		policy: bluemonday.StrictPolicy(),
	}
}

// Define fetches a definition, consulting cache first.
func (s *definitionService) Define(ctx context.Context, cache *DefinitionCache, text string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		logger.WarnContext(ctx, "empty text in definition request")
		return "", &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	if cache != nil {
		if def, ok := cache.Get(text); ok {
			logger.DebugContext(ctx, "definition served from cache", "text_length", len(text))
			return def, nil
		}
	}

	apiKey, err := s.apiKey(ctx)
	if err != nil {
		return "", err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	reply, err := s.client.ChatWithMessages(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: definitionSystemPrompt},
		{Role: llm.RoleUser, Content: `Define "` + text + `" in simple terms.`},
	}, llm.ChatParams{
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		APIKey:      apiKey,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get definition", "error", err)
		return "", &NetworkError{Err: err}
	}

	def := s.clean(reply)
	if def == "" {
		logger.ErrorContext(ctx, "empty definition returned")
		return "", &NetworkError{Err: errors.New("empty response")}
	}

	if cache != nil {
		cache.Put(text, def)
	}
	logger.InfoContext(ctx, "definition fetched", "text_length", len(text), "definition_length", len(def))
	return def, nil
}

func (s *definitionService) apiKey(ctx context.Context) (string, error) {
	key, err := s.creds.APIKey(ctx)
	if err != nil {
		return "", WrapError(err, "failed to read API key")
	}
	if key == "" {
		key = s.cfg.FallbackAPIKey
	}
	if key == "" {
		return "", &ConfigError{Message: missingKeyMessage}
	}
	return key, nil
}

// clean strips markup from a model reply and trims it.
func (s *definitionService) clean(reply string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(reply)))
}
