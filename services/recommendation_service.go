package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business constants for the rules engine.
var (
	cashbackRate      = decimal.NewFromFloat(0.03) // flat cashback on every purchase
	loanThreshold     = decimal.NewFromInt(1000)   // large-purchase floor for loan offers
	creditCardMin     = decimal.NewFromInt(500)
	creditCardMax     = decimal.NewFromInt(5000)
	loanAPR           = decimal.NewFromFloat(7.99)  // our personal-loan rate
	comparisonCardAPR = decimal.NewFromFloat(24.99) // typical card APR we compare against
)

const maxRecommendations = 5

// Rule priorities drive the response ordering: lower sorts first.
const (
	priorityAlert     = 1
	priorityLoan      = 2
	priorityCardOffer = 2
	priorityCashback  = 3
)

type PurchaseContext struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Merchant  string          `json:"merchant" binding:"required"`
	Category  string          `json:"category,omitempty"`
	URL       string          `json:"url,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

type RecommendationMessage struct {
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Savings            string           `json:"savings,omitempty"`
	CashbackAmount     *decimal.Decimal `json:"cashback_amount,omitempty"`
	SpendingPercentage *decimal.Decimal `json:"spending_percentage,omitempty"`
	CTAText            string           `json:"cta_text,omitempty"`
	CTAURL             string           `json:"cta_url,omitempty"`
	AlertType          string           `json:"alert_type,omitempty"`
}

type RecommendationImpact struct {
	GoalID     uuid.UUID       `json:"goal_id"`
	GoalName   string          `json:"goal_name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Recommendation is the response shape returned to the extension. The
// persisted models.Recommendation row shares its id.
type Recommendation struct {
	ID       uuid.UUID                 `json:"id"`
	Type     models.RecommendationType `json:"type"`
	Priority int                       `json:"priority"`
	Product  *models.Product           `json:"product,omitempty"`
	Message  RecommendationMessage     `json:"message"`
	Impact   *RecommendationImpact     `json:"impact,omitempty"`
}

type RecommendationService struct {
	db  *gorm.DB
	ai  *AIService
	bus *EventBus
}

func NewRecommendationService(db *gorm.DB, ai *AIService, bus *EventBus) *RecommendationService {
	return &RecommendationService{db: db, ai: ai, bus: bus}
}

// Recommend produces the ranked recommendation list for one purchase.
// The rules-based list is always computable; the AI pass is best-effort and
// any failure there falls back to the rules output unchanged.
func (s *RecommendationService) Recommend(ctx context.Context, user *models.User, pc PurchaseContext) ([]Recommendation, error) {
	if pc.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	goals, err := ActiveGoals(user.ID)
	if err != nil {
		return nil, err
	}
	analysis, err := AnalyzePurchaseImpact(pc.Amount, goals)
	if err != nil {
		return nil, err
	}
	eligible, err := EligibleProducts(s.db, user)
	if err != nil {
		return nil, err
	}

	recs := BuildRulesRecommendations(pc, analysis, eligible)

	if s.ai.Enabled() {
		aiRecs, err := s.ai.Augment(ctx, user, pc, goals, eligible)
		if err != nil {
			log.Printf("ai augmentation skipped: %v", err)
		} else if len(aiRecs) > 0 {
			recs = aiRecs
		}
	}

	recs = Rank(recs)
	s.record(user.ID, pc, recs)
	return recs, nil
}

// BuildRulesRecommendations evaluates the fixed rule set. It never fails and
// always yields at least the cashback entry.
func BuildRulesRecommendations(pc PurchaseContext, analysis *ImpactAnalysis, eligible []models.Product) []Recommendation {
	var recs []Recommendation
	amount := pc.Amount

	// Spending-limit alerts. The percentage comes straight off the analyzer
	// record so there is exactly one place computing it.
	var budgetShare *decimal.Decimal
	for _, gi := range analysis.Affected() {
		if gi.GoalType != models.GoalTypeSpendingLimit {
			continue
		}
		if budgetShare == nil {
			share := gi.ImpactPercentage
			budgetShare = &share
		}
		if gi.Remaining.Sign() >= 0 {
			continue
		}
		overage := gi.Remaining.Neg()
		recs = append(recs, Recommendation{
			ID:       uuid.New(),
			Type:     models.RecommendationTypeAlert,
			Priority: priorityAlert,
			Message: RecommendationMessage{
				Title:       "Spending Limit Alert",
				Description: fmt.Sprintf("This purchase would exceed your '%s' limit by $%s", gi.GoalName, overage.StringFixed(2)),
				AlertType:   "warning",
				CTAText:     "Review Budget",
			},
			Impact: &RecommendationImpact{
				GoalID:     gi.GoalID,
				GoalName:   gi.GoalName,
				Percentage: gi.ImpactPercentage,
			},
		})
	}

	// Loan offer for large purchases, with a fixed comparative APR estimate.
	if amount.GreaterThanOrEqual(loanThreshold) {
		interestSaved := amount.Mul(comparisonCardAPR.Sub(loanAPR)).Div(hundred)
		rec := Recommendation{
			ID:       uuid.New(),
			Type:     models.RecommendationTypeLoan,
			Priority: priorityLoan,
			Message: RecommendationMessage{
				Title: "Finance This Purchase",
				Description: fmt.Sprintf(
					"A personal loan at %s%% APR could save you about $%s a year in interest vs. a typical %s%% card",
					loanAPR.StringFixed(2), interestSaved.StringFixed(2), comparisonCardAPR.StringFixed(2),
				),
				Savings: "$" + interestSaved.StringFixed(2),
				CTAText: "Get Pre-Qualified",
			},
		}
		if loan := firstOfType(eligible, models.ProductTypeLoan); loan != nil {
			rec.Product = loan
			rec.Message.CTAURL = loan.ApplicationURL
		}
		recs = append(recs, rec)
	}

	// Credit-card offer for mid-size purchases, only when the member is
	// actually eligible for a card.
	if amount.GreaterThanOrEqual(creditCardMin) && amount.LessThanOrEqual(creditCardMax) {
		if card := firstOfType(eligible, models.ProductTypeCreditCard); card != nil {
			recs = append(recs, Recommendation{
				ID:       uuid.New(),
				Type:     models.RecommendationTypeCreditCard,
				Priority: priorityCardOffer,
				Product:  card,
				Message: RecommendationMessage{
					Title:       fmt.Sprintf("Consider %s", card.Name),
					Description: card.Description,
					CTAText:     "Apply Now",
					CTAURL:      card.ApplicationURL,
				},
			})
		}
	}

	// Cashback applies to every purchase.
	cashback := amount.Mul(cashbackRate)
	recs = append(recs, Recommendation{
		ID:       uuid.New(),
		Type:     models.RecommendationTypeCashback,
		Priority: priorityCashback,
		Message: RecommendationMessage{
			Title:              "Earn Cashback",
			Description:        fmt.Sprintf("Use your Sound CU Cashback Card to earn $%s back at %s", cashback.StringFixed(2), pc.Merchant),
			Savings:            "$" + cashback.StringFixed(2),
			CashbackAmount:     &cashback,
			SpendingPercentage: budgetShare,
			CTAText:            "Learn More",
		},
	})

	return recs
}

// Rank orders recommendations by ascending priority. The sort is stable so
// rules keep their relative order within a priority band, and the list is
// capped at maxRecommendations.
func Rank(recs []Recommendation) []Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// record persists each returned recommendation and emits its "shown" event.
// Failures here must never affect the response.
func (s *RecommendationService) record(userID uuid.UUID, pc PurchaseContext, recs []Recommendation) {
	if s.db == nil {
		return
	}
	for _, rec := range recs {
		row := models.Recommendation{
			ID:              rec.ID,
			UserID:          userID,
			Type:            rec.Type,
			Priority:        rec.Priority,
			PurchaseContext: toJSONMap(pc),
			Message:         toJSONMap(rec.Message),
			ShownCount:      1,
		}
		if rec.Product != nil {
			row.ProductID = &rec.Product.ID
		}
		if rec.Impact != nil {
			row.Impact = toJSONMap(rec.Impact)
		}
		if err := s.db.Create(&row).Error; err != nil {
			log.Printf("persist recommendation %s: %v", rec.ID, err)
			continue
		}
		s.bus.Emit(userID, "recommendation_shown", models.JSONMap{
			"recommendation_id": rec.ID.String(),
			"type":              string(rec.Type),
			"merchant":          pc.Merchant,
		})
	}
}

var ErrRecommendationNotFound = errors.New("recommendation not found")

// Track records a shown/clicked/dismissed event against a previously returned
// recommendation.
func (s *RecommendationService) Track(userID, recommendationID uuid.UUID, eventType string, pc *PurchaseContext) error {
	var row models.Recommendation
	if err := s.db.Where("id = ? AND user_id = ?", recommendationID, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecommendationNotFound
		}
		return err
	}

	switch eventType {
	case "shown":
		err := s.db.Model(&row).UpdateColumn("shown_count", gorm.Expr("shown_count + 1")).Error
		if err != nil {
			return err
		}
	case "clicked":
		err := s.db.Model(&row).UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
		if err != nil {
			return err
		}
	}

	data := models.JSONMap{"recommendation_id": recommendationID.String()}
	if pc != nil {
		data["context"] = toJSONMap(pc)
	}
	s.bus.Emit(userID, "recommendation_"+eventType, data)
	return nil
}

func firstOfType(products []models.Product, t models.ProductType) *models.Product {
	for i := range products {
		if products[i].Type == t {
			return &products[i]
		}
	}
	return nil
}

func toJSONMap(v any) models.JSONMap {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m models.JSONMap
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}
