package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// aiTimeout bounds the whole augmentation attempt. The rules-based response
// must never wait longer than this.
const aiTimeout = 5 * time.Second

type AIService struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewAIService() *AIService {
	return &AIService{
		client:  &http.Client{Timeout: aiTimeout},
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   "gpt-4-turbo-preview",
		baseURL: "https://api.openai.com/v1",
	}
}

func (a *AIService) Enabled() bool {
	return a != nil && a.apiKey != ""
}

// Augment asks the LLM for personalized recommendations. Best-effort: one
// retry, then the caller keeps its rules-based list. A reply arriving after
// the deadline is discarded by the context cancellation.
func (a *AIService) Augment(
	ctx context.Context,
	user *models.User,
	pc PurchaseContext,
	goals []models.Goal,
	eligible []models.Product,
) ([]Recommendation, error) {
	if !a.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	prompt := a.buildPrompt(user, pc, goals, eligible)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		recs, err := a.call(ctx, prompt, eligible)
		if err == nil {
			return recs, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (a *AIService) buildPrompt(user *models.User, pc PurchaseContext, goals []models.Goal, eligible []models.Product) string {
	type goalCtx struct {
		Type     string          `json:"type"`
		Name     string          `json:"name"`
		Target   decimal.Decimal `json:"target"`
		Current  decimal.Decimal `json:"current"`
		Spending decimal.Decimal `json:"spending"`
	}
	type productCtx struct {
		Name string   `json:"name"`
		Type string   `json:"type"`
		Rate *float64 `json:"rate,omitempty"`
	}

	gs := make([]goalCtx, 0, len(goals))
	for _, g := range goals {
		gs = append(gs, goalCtx{
			Type: string(g.Type), Name: g.Name,
			Target: g.TargetAmount, Current: g.CurrentAmount, Spending: g.CurrentSpending,
		})
	}
	ps := make([]productCtx, 0)
	for i, p := range eligible {
		if i == 5 {
			break
		}
		ps = append(ps, productCtx{Name: p.Name, Type: string(p.Type), Rate: p.BaseRate})
	}

	memberJSON, _ := json.Marshal(map[string]any{
		"name":              user.FirstName + " " + user.LastName,
		"segment":           user.Segment,
		"financial_profile": user.FinancialProfile,
		"goals":             gs,
	})
	purchaseJSON, _ := json.Marshal(pc)
	productsJSON, _ := json.Marshal(ps)

	var sb strings.Builder
	sb.WriteString("You are a financial advisor for Sound Credit Union. A member is about to make a purchase and needs personalized recommendations.\n\n")
	sb.WriteString("Member Profile:\n" + string(memberJSON) + "\n\n")
	sb.WriteString("Purchase Context:\n" + string(purchaseJSON) + "\n\n")
	sb.WriteString("Available Products:\n" + string(productsJSON) + "\n\n")
	sb.WriteString(`Generate 2-3 highly personalized recommendations. Alert if the purchase hurts a goal, suggest relevant products, keep the language friendly and specific.
Return a JSON object: {"recommendations": [{"type": "alert|loan|credit_card|cashback", "priority": 1-5, "title": "...", "description": "...", "cta_text": "...", "product_name": "...", "savings": "..."}]}`)
	return sb.String()
}

type aiRecommendation struct {
	Type        string `json:"type"`
	Priority    int    `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CTAText     string `json:"cta_text"`
	ProductName string `json:"product_name"`
	Savings     string `json:"savings"`
}

func (a *AIService) call(ctx context.Context, prompt string, eligible []models.Product) ([]Recommendation, error) {
	body := map[string]any{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a helpful financial advisor focused on member success."},
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.7,
		"max_tokens":      800,
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, fmt.Errorf("decode openai response error: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("empty completion from openai")
	}

	var payload struct {
		Recommendations []aiRecommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(out.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("decode recommendations payload error: %w", err)
	}

	return convertAIRecommendations(payload.Recommendations, eligible), nil
}

// convertAIRecommendations re-validates the model output: unknown types are
// dropped, priorities are defaulted, and product mentions are resolved
// against the eligible catalog only.
func convertAIRecommendations(aiRecs []aiRecommendation, eligible []models.Product) []Recommendation {
	var recs []Recommendation
	for i, ar := range aiRecs {
		typ := models.RecommendationType(ar.Type)
		switch typ {
		case models.RecommendationTypeLoan, models.RecommendationTypeCreditCard,
			models.RecommendationTypeAlert, models.RecommendationTypeCashback:
		default:
			continue
		}
		if ar.Title == "" || ar.Description == "" {
			continue
		}
		priority := ar.Priority
		if priority < 1 || priority > 5 {
			priority = i + 1
		}
		rec := Recommendation{
			ID:       uuid.New(),
			Type:     typ,
			Priority: priority,
			Message: RecommendationMessage{
				Title:       ar.Title,
				Description: ar.Description,
				CTAText:     ar.CTAText,
				Savings:     ar.Savings,
			},
		}
		if ar.ProductName != "" {
			for j := range eligible {
				if strings.Contains(strings.ToLower(ar.ProductName), strings.ToLower(eligible[j].Name)) {
					rec.Product = &eligible[j]
					break
				}
			}
		}
		recs = append(recs, rec)
	}
	return recs
}
