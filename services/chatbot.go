package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

// TroubleReply replaces any answer whose lookups failed.
const TroubleReply = "I'm having trouble processing your request right now. Please try again later."

const maxSuggestions = 5

// Reply is what the assistant answers to one message.
type Reply struct {
	Text             string
	RelatedFoodItems []string
	Intent           Intent
}

type randKey struct{}

// WithRand makes the assistant draw its random choices from r.
func WithRand(ctx context.Context, r *rand.Rand) context.Context {
	return context.WithValue(ctx, randKey{}, r)
}

func pick(ctx context.Context, n int) int {
	if r, ok := ctx.Value(randKey{}).(*rand.Rand); ok && r != nil {
		return r.Intn(n)
	}
	return rand.Intn(n)
}

var (
	foodNutritionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)calories in (.+?)[?.]`),
		regexp.MustCompile(`(?i)nutrition for (.+?)[?.]`),
		regexp.MustCompile(`(?i)how many calories in (.+?)[?.]`),
	}
	allergenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)allergic to (.+?)[?.]`),
		regexp.MustCompile(`(?i)allergy to (.+?)[?.]`),
	}
	recommendationCategories = []string{
		models.CategoryBreakfast, models.CategoryLunch, models.CategoryDinner,
		models.CategoryAppetizer, models.CategoryMainCourse, models.CategoryDessert,
		models.CategoryBeverage, models.CategorySnack,
	}
	menuCategories = []string{
		models.CategoryAppetizer, models.CategoryMainCourse, models.CategoryDessert, models.CategoryBeverage,
	}
)

// Assistant answers chat messages from the catalog, the order history and
// the calorie ledger. It never writes to any of them.
type Assistant struct {
	foods    store.FoodStore
	orders   store.OrderStore
	calories store.CalorieStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewAssistant(st store.Store, logger *zap.Logger) *Assistant {
	return &Assistant{
		foods:    st,
		orders:   st,
		calories: st,
		logger:   logger.Named("assistant"),
		now:      time.Now,
	}
}

// Respond classifies message and runs the matching generator. Lookup failures
// are logged and answered with TroubleReply.
func (a *Assistant) Respond(ctx context.Context, message string, user *models.User) Reply {
	intent := DetectIntent(message)
	lower := strings.ToLower(message)

	var (
		reply Reply
		err   error
	)
	switch intent {
	case IntentGreeting:
		reply = a.greeting(ctx, user)
	case IntentFoodRecommendation:
		reply, err = a.recommend(ctx, lower, user)
	case IntentOrderStatus:
		reply, err = a.orderStatus(ctx, user)
	case IntentNutritionInfo:
		reply, err = a.nutritionInfo(ctx, message, lower, user)
	case IntentDietaryQuestion:
		reply, err = a.dietaryQuestion(ctx, message, lower)
	case IntentHelp:
		reply = Reply{Text: helpText}
	case IntentFeedback:
		reply = Reply{Text: feedbackText}
	default:
		reply, err = a.generalQuery(ctx, lower)
	}
	if err != nil {
		a.logger.Error("chat lookup failed",
			zap.String("intent", string(intent)),
			zap.String("user", user.ID.Hex()),
			zap.Error(Upstream("chat lookup", err)))
		return Reply{Text: TroubleReply, Intent: IntentOther}
	}
	reply.Intent = intent
	if reply.RelatedFoodItems == nil {
		reply.RelatedFoodItems = []string{}
	}
	return reply
}

const (
	helpText = "I'm ChefBot, your personal food assistant! Here's how I can help you:\n\n" +
		"• Recommend food items based on your preferences\n" +
		"• Provide nutritional information about menu items\n" +
		"• Track your order status\n" +
		"• Answer questions about dietary restrictions and allergies\n" +
		"• Help you track your calorie intake\n\n" +
		"Just ask me anything about our food, and I'll do my best to assist you!"
	feedbackText = "We value your feedback! You can rate your order and provide comments after delivery through the 'Orders' section. " +
		"If you have specific suggestions or concerns, please let us know, and we'll make sure to address them."
	crossContamination = "However, please note that cross-contamination is possible in our kitchen."
)

// GreetingTemplates are the greetings the assistant picks from, each taking
// the user's name.
var GreetingTemplates = []string{
	"Hello %s! How can I help you today?",
	"Hi there %s! What can I do for you?",
	"Hey %s! How can I assist you with your food order today?",
	"Greetings %s! I'm ChefBot, your personal food assistant. How may I help you?",
}

func (a *Assistant) greeting(ctx context.Context, user *models.User) Reply {
	template := GreetingTemplates[pick(ctx, len(GreetingTemplates))]
	return Reply{Text: fmt.Sprintf(template, user.Name)}
}

func (a *Assistant) recommend(ctx context.Context, lower string, user *models.User) (Reply, error) {
	filter := store.FoodFilter{
		AvailableOnly: true,
		Vegetarian:    strings.Contains(lower, "vegetarian") || user.Prefers("vegetarian"),
		Vegan:         strings.Contains(lower, "vegan") || user.Prefers("vegan"),
		GlutenFree:    strings.Contains(lower, "gluten free") || user.Prefers("gluten-free"),
		Limit:         maxSuggestions,
	}
	for _, c := range recommendationCategories {
		if strings.Contains(lower, c) {
			filter.Categories = append(filter.Categories, c)
		}
	}
	if strings.Contains(lower, "low calorie") || strings.Contains(lower, "diet") {
		maxCalories := 500.0
		filter.MaxCalories = &maxCalories
	}
	if strings.Contains(lower, "high protein") {
		minProtein := 20.0
		filter.MinProtein = &minProtein
	}
	switch {
	case strings.Contains(lower, "popular") || strings.Contains(lower, "best seller"):
		filter.Popular = true
	case strings.Contains(lower, "special") || strings.Contains(lower, "chef"):
		filter.Recommended = true
	default:
		filter.SortByRating = true
	}

	foods, err := a.foods.ListFoods(ctx, filter)
	if err != nil {
		return Reply{}, err
	}
	if len(foods) == 0 {
		return Reply{Text: "I'm sorry, I couldn't find any food items matching your criteria. Would you like me to suggest something else?"}, nil
	}
	return Reply{
		Text:             fmt.Sprintf("Based on your preferences, I recommend: %s. Would you like more details about any of these items?", foodNames(foods)),
		RelatedFoodItems: foodIDs(foods),
	}, nil
}

func (a *Assistant) orderStatus(ctx context.Context, user *models.User) (Reply, error) {
	order, err := a.orders.LatestOrder(ctx, user.ID.Hex())
	if errors.Is(err, store.ErrNotFound) {
		return Reply{Text: "I don't see any recent orders for you. Would you like to place a new order?"}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	ref := order.ShortID()
	var text string
	switch order.OrderStatus {
	case models.StatusPlaced:
		text = fmt.Sprintf("Your order #%s has been placed and is waiting for confirmation from the restaurant.", ref)
	case models.StatusConfirmed:
		text = fmt.Sprintf("Your order #%s has been confirmed and the restaurant is preparing your food.", ref)
	case models.StatusPreparing:
		text = fmt.Sprintf("Your order #%s is being prepared by our chefs. It should be ready for delivery soon.", ref)
	case models.StatusOutForDelivery:
		text = fmt.Sprintf("Your order #%s is out for delivery! It should arrive at your location shortly.", ref)
	case models.StatusDelivered:
		text = fmt.Sprintf("Your order #%s has been delivered. Enjoy your meal! Would you like to provide feedback?", ref)
	case models.StatusCancelled:
		text = fmt.Sprintf("Your order #%s was cancelled. Would you like to place a new order?", ref)
	default:
		text = fmt.Sprintf("Your order #%s status is: %s.", ref, order.OrderStatus)
	}
	if order.EstimatedDeliveryTime != nil && order.OrderStatus.InFlight() {
		eta := order.EstimatedDeliveryTime.In(a.now().Location())
		text += fmt.Sprintf(" Estimated delivery time: %s.", eta.Format("15:04"))
	}
	return Reply{Text: text}, nil
}

func (a *Assistant) nutritionInfo(ctx context.Context, message, lower string, user *models.User) (Reply, error) {
	if name := firstCapture(foodNutritionPatterns, message); name != "" {
		foods, err := a.foods.ListFoods(ctx, store.FoodFilter{NameContains: name, Limit: 1})
		if err != nil {
			return Reply{}, err
		}
		if len(foods) == 0 {
			return Reply{Text: fmt.Sprintf("I'm sorry, I couldn't find nutritional information for %q. Would you like to know about a different item?", name)}, nil
		}
		food := foods[0]
		n := food.NutritionalInfo
		return Reply{
			Text: fmt.Sprintf("%s contains %s calories, %sg protein, %sg carbs, and %sg fat per serving. Would you like more detailed nutritional information?",
				food.Name, num(n.Calories), num(n.Protein), num(n.Carbohydrates), num(n.Fat)),
			RelatedFoodItems: []string{food.ID.Hex()},
		}, nil
	}

	if strings.Contains(lower, "daily") || strings.Contains(lower, "today") || strings.Contains(lower, "consumed") {
		tracker, err := a.calories.FindCalorieTracker(ctx, user.ID.Hex(), StartOfDay(a.now()))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return Reply{}, err
		}
		if tracker == nil || tracker.TotalCalories == 0 {
			return Reply{Text: "You haven't consumed any calories from our restaurant today. Would you like me to recommend something?"}, nil
		}
		goal := user.EffectiveCalorieGoal()
		percent := math.Round(tracker.TotalCalories / float64(goal) * 100)
		ns := tracker.NutritionSummary
		return Reply{Text: fmt.Sprintf("Today you've consumed %s calories from our restaurant, which is %s%% of your daily goal (%d calories). This includes %sg protein, %sg carbs, and %sg fat.",
			num(tracker.TotalCalories), num(percent), goal, num(ns.Protein), num(ns.Carbohydrates), num(ns.Fat))}, nil
	}

	return Reply{Text: "I can provide nutritional information for any item on our menu. Just ask about a specific dish, or check your daily calorie intake by asking 'How many calories have I consumed today?'"}, nil
}

func (a *Assistant) dietaryQuestion(ctx context.Context, message, lower string) (Reply, error) {
	switch {
	case strings.Contains(lower, "vegetarian"):
		return a.dietaryOptions(ctx, "vegetarian", store.FoodFilter{Vegetarian: true})
	case strings.Contains(lower, "vegan"):
		return a.dietaryOptions(ctx, "vegan", store.FoodFilter{Vegan: true})
	case strings.Contains(lower, "gluten free") || strings.Contains(lower, "gluten-free"):
		return a.dietaryOptions(ctx, "gluten-free", store.FoodFilter{GlutenFree: true})
	case strings.Contains(lower, "allergy") || strings.Contains(lower, "allergic"):
		allergen := strings.ToLower(firstCapture(allergenPatterns, message))
		if allergen == "" {
			return Reply{Text: "If you have food allergies, please let me know what you're allergic to, and I can suggest items that don't contain those ingredients. " + crossContamination}, nil
		}
		foods, err := a.foods.ListFoods(ctx, store.FoodFilter{AvailableOnly: true, ExcludeIngredient: allergen, Limit: maxSuggestions})
		if err != nil {
			return Reply{}, err
		}
		if len(foods) == 0 {
			return Reply{Text: fmt.Sprintf("I'm sorry, I couldn't find items that are guaranteed to be free from %s. Please consult with our staff for more detailed allergen information. %s", allergen, crossContamination)}, nil
		}
		return Reply{
			Text: fmt.Sprintf("Based on our ingredient information, these items should be free from %s: %s. %s Would you like more details about any of these items?",
				allergen, foodNames(foods), crossContamination),
			RelatedFoodItems: foodIDs(foods),
		}, nil
	}
	return Reply{Text: "I can help you find food items that match your dietary preferences. We offer vegetarian, vegan, and gluten-free options. You can also ask about specific allergens or nutritional requirements."}, nil
}

func (a *Assistant) dietaryOptions(ctx context.Context, label string, filter store.FoodFilter) (Reply, error) {
	filter.AvailableOnly = true
	filter.Limit = maxSuggestions
	foods, err := a.foods.ListFoods(ctx, filter)
	if err != nil {
		return Reply{}, err
	}
	if len(foods) == 0 {
		return Reply{Text: fmt.Sprintf("I'm sorry, we don't currently have any %s options available. Please check back later as our menu changes regularly.", label)}, nil
	}
	return Reply{
		Text:             fmt.Sprintf("Yes, we have several %s options including: %s. Would you like more details about any of these items?", label, foodNames(foods)),
		RelatedFoodItems: foodIDs(foods),
	}, nil
}

func (a *Assistant) generalQuery(ctx context.Context, lower string) (Reply, error) {
	foods, err := a.foods.ListFoods(ctx, store.FoodFilter{AvailableOnly: true})
	if err != nil {
		return Reply{}, err
	}
	for _, food := range foods {
		name := strings.ToLower(strings.TrimSpace(food.Name))
		if name == "" || !strings.Contains(lower, name) {
			continue
		}
		return Reply{
			Text: fmt.Sprintf("%s is %s. It costs $%.2f and contains %s calories. Would you like to add it to your cart?",
				food.Name, food.Description, food.Price, num(food.NutritionalInfo.Calories)),
			RelatedFoodItems: []string{food.ID.Hex()},
		}, nil
	}

	if strings.Contains(lower, "menu") || strings.Contains(lower, "what do you have") || strings.Contains(lower, "what do you offer") {
		category := menuCategories[pick(ctx, len(menuCategories))]
		items, err := a.foods.ListFoods(ctx, store.FoodFilter{AvailableOnly: true, Categories: []string{category}, Limit: maxSuggestions})
		if err != nil {
			return Reply{}, err
		}
		if len(items) == 0 {
			return Reply{Text: "We offer a variety of appetizers, main courses, desserts, and beverages. Would you like me to recommend something specific?"}, nil
		}
		return Reply{
			Text: fmt.Sprintf("We have a wide selection of items on our menu. Some of our %ss include: %s. Would you like to see more categories or get details about any of these items?",
				category, foodNames(items)),
			RelatedFoodItems: foodIDs(items),
		}, nil
	}

	return Reply{Text: "I'm not sure I understand. You can ask me about our menu, get food recommendations, check your order status, or inquire about nutritional information. How can I help you today?"}, nil
}

func firstCapture(exprs []*regexp.Regexp, message string) string {
	for _, re := range exprs {
		if m := re.FindStringSubmatch(message); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

func foodNames(foods []models.Food) string {
	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

func foodIDs(foods []models.Food) []string {
	ids := make([]string, len(foods))
	for i, f := range foods {
		ids[i] = f.ID.Hex()
	}
	return ids
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
