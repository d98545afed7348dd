// Package advisor generates beauty-routine chat replies via OpenAI-compatible
// chat completion APIs, optionally enriched with live web search results.
package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"vanity/internal/model"
	"vanity/internal/websearch"
)

const (
	maxTokens   = 1000
	temperature = 0.7
)

// HistoryWindow is how many trailing history messages each turn sends
// upstream. Older turns are kept on disk but never leave the machine.
const HistoryWindow = 10

// Fixed user-facing strings. These are part of the product's voice and
// must not vary between runs.
const (
	// ApologyChat is shown and persisted when a chat turn fails upstream.
	ApologyChat = "I apologize, but I'm having trouble connecting right now. Please try again in a moment."

	// ApologyRoutine is the failure reply for a routine-generation turn.
	ApologyRoutine = "I apologize, but I'm having trouble creating your routine right now. Please try again in a moment."

	// SelectFirstPrompt is shown when a routine is requested with nothing selected.
	SelectFirstPrompt = "Please select some products first so I can create a personalized routine for you!"

	// RoutineUserTurn is the visible stand-in message for a routine request.
	RoutineUserTurn = "Please create a beauty routine using my selected products"

	// RoutineInstruction is the model-facing prompt behind RoutineUserTurn.
	RoutineInstruction = "Create a complete daily beauty routine using the selected products. Include morning and evening steps with clear instructions."
)

const systemPrompt = `You are a friendly and helpful L'Oreal beauty advisor with access to current web information. Your role is to provide personalized beauty and skincare routine recommendations using both your knowledge and real-time web search results.

IMPORTANT GUIDELINES:
- Be friendly, helpful, sharp, and on point
- Focus on L'Oreal brand values of beauty, confidence, and self-expression
- Provide clear, practical advice that users can easily follow
- When you have web search results, incorporate current information and name your sources
- Use emojis appropriately to create emotional connection and express warmth
- When referring to products, use their exact names as they appear in the product list
- Keep responses concise but informative
- When products are selected, incorporate them into your recommendations
- If no products are selected, suggest suitable L'Oreal product categories
- Always end with encouragement about their beauty journey

RESPONSE FORMAT:
Use Markdown with ## for main headers, ### for sub-headers, and short paragraphs.
Example: ## Your Personalized Beauty Routine ✨ followed by ### Morning Steps 🌅 and the steps.
Keep it clean and easy to read with emojis to enhance emotional connection.`

// Client calls an OpenAI-compatible chat completion API. A nil Client is
// valid and means the chat assistant is disabled.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	search   *websearch.Client
	client   *http.Client
	log      *zap.Logger
}

// NewFromEnv detects a chat completion provider from the environment.
// VANITY_PROXY_URL takes precedence (a key-holding relay, no local key),
// then OPENAI_API_KEY, then an Ollama host. Returns nil when nothing is
// configured — this is not an error.
func NewFromEnv(search *websearch.Client, log *zap.Logger) *Client {
	if proxy := os.Getenv("VANITY_PROXY_URL"); proxy != "" {
		return &Client{
			endpoint: proxy,
			model:    "gpt-4o",
			search:   search,
			client:   &http.Client{Timeout: 60 * time.Second},
			log:      log,
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return &Client{
			endpoint: "https://api.openai.com/v1/chat/completions",
			model:    "gpt-4o",
			apiKey:   key,
			search:   search,
			client:   &http.Client{Timeout: 60 * time.Second},
			log:      log,
		}
	}

	if chatModel := os.Getenv("OLLAMA_CHAT_MODEL"); chatModel != "" {
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			return nil
		}
		return &Client{
			endpoint: strings.TrimRight(host, "/") + "/v1/chat/completions",
			model:    chatModel,
			apiKey:   "ollama",
			search:   search,
			client:   &http.Client{Timeout: 120 * time.Second},
			log:      log,
		}
	}

	return nil
}

// Model returns the chat model name in use.
func (c *Client) Model() string { return c.model }

// Generate runs one chat turn: it enriches the prompt with web results when
// available, sends the recent history window plus the current message, and
// returns the assistant's reply. Enrichment failures are logged and the turn
// proceeds without them.
func (c *Client) Generate(prompt string, selected []model.Product, history []model.Message) (string, error) {
	enrichment := ""
	if c.search != nil {
		results, err := c.search.Search(prompt)
		if err != nil {
			c.log.Warn("web search failed, continuing without enrichment", zap.Error(err))
		} else {
			enrichment = websearch.FormatContext(results)
		}
	}

	msgs := buildMessages(prompt, productContext(selected), enrichment, history)

	reqBody, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return "", fmt.Errorf("chat API returned %d: %s", resp.StatusCode, preview)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("chat API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// productContext describes the current selection for the model.
func productContext(selected []model.Product) string {
	if len(selected) == 0 {
		return "No products currently selected"
	}

	parts := make([]string, len(selected))
	for i, p := range selected {
		parts[i] = fmt.Sprintf("%s by %s (%s)", p.Name, p.Brand, p.Category)
	}
	return "Selected products: " + strings.Join(parts, ", ")
}

func buildMessages(prompt, context, enrichment string, history []model.Message) []chatMessage {
	msgs := []chatMessage{{Role: "system", Content: systemPrompt}}

	start := 0
	if len(history) > HistoryWindow {
		start = len(history) - HistoryWindow
	}
	for _, m := range history[start:] {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	msgs = append(msgs, chatMessage{
		Role:    model.RoleUser,
		Content: fmt.Sprintf("%s\n\nContext: %s%s", prompt, context, enrichment),
	})
	return msgs
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
}
