package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

const (
	DateLayout = "2006-01-02"

	MinCalorieGoal = 500
	MaxCalorieGoal = 10000

	maxRangeDays   = 366
	maxRangeMonths = 120
)

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type MacroSeries struct {
	Protein       []float64 `json:"protein"`
	Carbohydrates []float64 `json:"carbohydrates"`
	Fat           []float64 `json:"fat"`
}

type MealTypeSeries struct {
	Breakfast []float64 `json:"breakfast"`
	Lunch     []float64 `json:"lunch"`
	Dinner    []float64 `json:"dinner"`
	Snack     []float64 `json:"snack"`
}

type CalorieChart struct {
	Dates         []string       `json:"dates"`
	Calories      []float64      `json:"calories"`
	CalorieGoal   int            `json:"calorieGoal"`
	NutritionData MacroSeries    `json:"nutritionData"`
	MealTypeData  MealTypeSeries `json:"mealTypeData"`
}

type CalorieRange struct {
	Trackers  []models.CalorieTracker `json:"trackers"`
	ChartData CalorieChart            `json:"chartData"`
}

type CalorieDay struct {
	Date          string                   `json:"date"`
	Calories      float64                  `json:"calories"`
	PercentOfGoal float64                  `json:"percentOfGoal"`
	Nutrition     *models.NutritionSummary `json:"nutrition,omitempty"`
}

type CaloriePeriod struct {
	TotalCalories    float64                 `json:"totalCalories"`
	AvgCalories      float64                 `json:"avgCalories"`
	AvgPercentOfGoal float64                 `json:"avgPercentOfGoal"`
	Nutrition        models.NutritionSummary `json:"nutrition"`
}

type CalorieSummary struct {
	CalorieGoal int           `json:"calorieGoal"`
	Today       CalorieDay    `json:"today"`
	Yesterday   CalorieDay    `json:"yesterday"`
	Week        CaloriePeriod `json:"week"`
	Month       CaloriePeriod `json:"month"`
}

type CategorySeries struct {
	Breakfast []float64 `json:"breakfast"`
	Lunch     []float64 `json:"lunch"`
	Dinner    []float64 `json:"dinner"`
	Snack     []float64 `json:"snack"`
	Other     []float64 `json:"other"`
}

type ExpenseChart struct {
	Labels     []string       `json:"labels"`
	Expenses   []float64      `json:"expenses"`
	Categories CategorySeries `json:"categories"`
}

type ExpenseRangeSummary struct {
	TotalExpense   float64                      `json:"totalExpense"`
	AvgExpense     float64                      `json:"avgExpense"`
	CategoryTotals models.ExpenseCategoryTotals `json:"categoryTotals"`
}

type ExpenseRange struct {
	Trackers  []models.ExpenseTracker `json:"trackers"`
	ChartData ExpenseChart            `json:"chartData"`
	Summary   ExpenseRangeSummary     `json:"summary"`
}

type CurrentMonthExpense struct {
	Year              int                          `json:"year"`
	Month             int                          `json:"month"`
	Expense           float64                      `json:"expense"`
	Budget            float64                      `json:"budget"`
	BudgetRemaining   float64                      `json:"budgetRemaining"`
	BudgetPercentUsed float64                      `json:"budgetPercentUsed"`
	Savings           float64                      `json:"savings"`
	CategoryBreakdown models.ExpenseCategoryTotals `json:"categoryBreakdown"`
	DailyAverage      float64                      `json:"dailyAverage"`
}

type MonthExpense struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Expense float64 `json:"expense"`
}

type YearToDate struct {
	Expense        float64 `json:"expense"`
	MonthlyAverage float64 `json:"monthlyAverage"`
}

type ExpenseComparison struct {
	MonthOverMonthChange float64 `json:"monthOverMonthChange"`
}

type ExpenseSummary struct {
	CurrentMonth  CurrentMonthExpense `json:"currentMonth"`
	PreviousMonth MonthExpense        `json:"previousMonth"`
	YearToDate    YearToDate          `json:"yearToDate"`
	Comparison    ExpenseComparison   `json:"comparison"`
}

// TrackerService reports on the calorie and expense ledgers and manages the
// user-set goal and budget.
type TrackerService struct {
	users    store.UserStore
	calories store.CalorieStore
	expenses store.ExpenseStore
	now      func() time.Time
}

func NewTrackerService(st store.Store) *TrackerService {
	return &TrackerService{users: st, calories: st, expenses: st, now: time.Now}
}

func (s *TrackerService) parseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, raw, s.now().Location())
	if err != nil {
		return time.Time{}, Validation("Invalid date format. Use YYYY-MM-DD")
	}
	return d, nil
}

// CaloriesOn returns the tracker of one day, or an empty one.
func (s *TrackerService) CaloriesOn(ctx context.Context, user *models.User, rawDate string) (*models.CalorieTracker, error) {
	day, err := s.parseDate(rawDate)
	if err != nil {
		return nil, err
	}
	tracker, err := s.calories.FindCalorieTracker(ctx, user.ID.Hex(), day)
	if errors.Is(err, store.ErrNotFound) {
		return &models.CalorieTracker{
			User_id:     user.ID.Hex(),
			Date:        day,
			CalorieGoal: user.EffectiveCalorieGoal(),
			Meals:       []models.Meal{},
		}, nil
	}
	if err != nil {
		return nil, Internal("load calorie tracker", err)
	}
	if tracker.CalorieGoal == 0 {
		tracker.CalorieGoal = user.EffectiveCalorieGoal()
	}
	return tracker, nil
}

// CalorieRange returns the trackers between two dates inclusive plus chart
// series with one zero-filled point per day.
func (s *TrackerService) CalorieRange(ctx context.Context, user *models.User, rawStart, rawEnd string) (*CalorieRange, error) {
	start, err := s.parseDate(rawStart)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDate(rawEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, Validation("End date must not be before start date")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, Validation("Date range cannot exceed %d days", maxRangeDays)
	}

	loc := start.Location()
	trackers, err := s.calories.ListCalorieTrackers(ctx, user.ID.Hex(), start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, Internal("list calorie trackers", err)
	}
	byDay := make(map[string]*models.CalorieTracker, len(trackers))
	for i := range trackers {
		byDay[trackers[i].Date.In(loc).Format(DateLayout)] = &trackers[i]
	}

	chart := CalorieChart{CalorieGoal: user.EffectiveCalorieGoal()}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateLayout)
		chart.Dates = append(chart.Dates, key)
		var (
			total float64
			ns    models.NutritionSummary
			meals = map[string]float64{}
		)
		if t, ok := byDay[key]; ok {
			total, ns, meals = t.TotalCalories, t.NutritionSummary, t.MealTypeCalories()
		}
		chart.Calories = append(chart.Calories, total)
		chart.NutritionData.Protein = append(chart.NutritionData.Protein, ns.Protein)
		chart.NutritionData.Carbohydrates = append(chart.NutritionData.Carbohydrates, ns.Carbohydrates)
		chart.NutritionData.Fat = append(chart.NutritionData.Fat, ns.Fat)
		chart.MealTypeData.Breakfast = append(chart.MealTypeData.Breakfast, meals[models.MealBreakfast])
		chart.MealTypeData.Lunch = append(chart.MealTypeData.Lunch, meals[models.MealLunch])
		chart.MealTypeData.Dinner = append(chart.MealTypeData.Dinner, meals[models.MealDinner])
		chart.MealTypeData.Snack = append(chart.MealTypeData.Snack, meals[models.MealSnack])
	}
	return &CalorieRange{Trackers: trackers, ChartData: chart}, nil
}

func (s *TrackerService) CalorieSummary(ctx context.Context, user *models.User) (*CalorieSummary, error) {
	userID := user.ID.Hex()
	goal := float64(user.EffectiveCalorieGoal())
	today := StartOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)
	startOfWeek := today.AddDate(0, 0, -int(today.Weekday()))
	startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	var from time.Time
	if startOfWeek.Before(startOfMonth) {
		from = startOfWeek
	} else {
		from = startOfMonth
	}
	if yesterday.Before(from) {
		from = yesterday
	}
	trackers, err := s.calories.ListCalorieTrackers(ctx, userID, from, tomorrow)
	if err != nil {
		return nil, Internal("list calorie trackers", err)
	}

	summary := &CalorieSummary{CalorieGoal: user.EffectiveCalorieGoal()}
	summary.Today = CalorieDay{Date: today.Format(DateLayout), Nutrition: &models.NutritionSummary{}}
	summary.Yesterday = CalorieDay{Date: yesterday.Format(DateLayout)}

	var week, month []models.CalorieTracker
	for _, t := range trackers {
		day := StartOfDay(t.Date.In(today.Location()))
		switch {
		case day.Equal(today):
			summary.Today.Calories = t.TotalCalories
			ns := t.NutritionSummary
			summary.Today.Nutrition = &ns
		case day.Equal(yesterday):
			summary.Yesterday.Calories = t.TotalCalories
		}
		if !day.Before(startOfWeek) {
			week = append(week, t)
		}
		if !day.Before(startOfMonth) {
			month = append(month, t)
		}
	}
	summary.Today.PercentOfGoal = summary.Today.Calories / goal * 100
	summary.Yesterday.PercentOfGoal = summary.Yesterday.Calories / goal * 100
	summary.Week = caloriePeriod(week, goal)
	summary.Month = caloriePeriod(month, goal)
	return summary, nil
}

func caloriePeriod(trackers []models.CalorieTracker, goal float64) CaloriePeriod {
	var p CaloriePeriod
	for _, t := range trackers {
		p.TotalCalories += t.TotalCalories
		p.Nutrition = p.Nutrition.Add(t.NutritionSummary)
	}
	if n := float64(len(trackers)); n > 0 {
		p.AvgCalories = p.TotalCalories / n
		p.Nutrition = p.Nutrition.Divide(n)
	}
	p.AvgPercentOfGoal = p.AvgCalories / goal * 100
	return p
}

func (s *TrackerService) SetCalorieGoal(ctx context.Context, user *models.User, goal int) error {
	if goal < MinCalorieGoal || goal > MaxCalorieGoal {
		return Validation("Calorie goal must be between %d and %d", MinCalorieGoal, MaxCalorieGoal)
	}
	if err := s.users.SetCalorieGoal(ctx, user.ID.Hex(), goal); err != nil {
		return fromStore("update calorie goal", err, "User not found")
	}
	user.CalorieGoal = goal
	return nil
}

func validMonth(year, month int) bool {
	return year > 0 && month >= 1 && month <= 12
}

func emptyExpenseTracker(userID string, year, month int) *models.ExpenseTracker {
	return &models.ExpenseTracker{User_id: userID, Year: year, Month: month, Expenses: []models.Expense{}}
}

// ExpensesIn returns the tracker of one month, or an empty one.
func (s *TrackerService) ExpensesIn(ctx context.Context, user *models.User, year, month int) (*models.ExpenseTracker, error) {
	if !validMonth(year, month) {
		return nil, Validation("Invalid year or month format")
	}
	tracker, err := s.expenses.FindExpenseTracker(ctx, user.ID.Hex(), year, month)
	if errors.Is(err, store.ErrNotFound) {
		return emptyExpenseTracker(user.ID.Hex(), year, month), nil
	}
	if err != nil {
		return nil, Internal("load expense tracker", err)
	}
	return tracker, nil
}

func (s *TrackerService) ExpenseRange(ctx context.Context, user *models.User, startYear, startMonth, endYear, endMonth int) (*ExpenseRange, error) {
	if !validMonth(startYear, startMonth) || !validMonth(endYear, endMonth) {
		return nil, Validation("Invalid date format")
	}
	lo, hi := store.MonthIndex(startYear, startMonth), store.MonthIndex(endYear, endMonth)
	if hi < lo {
		return nil, Validation("End month must not be before start month")
	}
	if hi-lo >= maxRangeMonths {
		return nil, Validation("Month range cannot exceed %d months", maxRangeMonths)
	}

	trackers, err := s.expenses.ListExpenseTrackers(ctx, user.ID.Hex(), startYear, startMonth, endYear, endMonth)
	if err != nil {
		return nil, Internal("list expense trackers", err)
	}
	byMonth := make(map[int]*models.ExpenseTracker, len(trackers))
	for i := range trackers {
		byMonth[store.MonthIndex(trackers[i].Year, trackers[i].Month)] = &trackers[i]
	}

	out := &ExpenseRange{Trackers: trackers}
	chart := &out.ChartData
	for idx := lo; idx <= hi; idx++ {
		year, month := idx/12, idx%12+1
		chart.Labels = append(chart.Labels, monthLabels[month-1]+" "+strconv.Itoa(year))
		var (
			total float64
			cats  models.ExpenseCategoryTotals
		)
		if t, ok := byMonth[idx]; ok {
			total, cats = t.TotalExpense, t.Categories
		}
		chart.Expenses = append(chart.Expenses, total)
		chart.Categories.Breakfast = append(chart.Categories.Breakfast, cats.Breakfast)
		chart.Categories.Lunch = append(chart.Categories.Lunch, cats.Lunch)
		chart.Categories.Dinner = append(chart.Categories.Dinner, cats.Dinner)
		chart.Categories.Snack = append(chart.Categories.Snack, cats.Snack)
		chart.Categories.Other = append(chart.Categories.Other, cats.Other)
	}

	for _, t := range trackers {
		out.Summary.TotalExpense += t.TotalExpense
		out.Summary.CategoryTotals = out.Summary.CategoryTotals.Add(t.Categories)
	}
	if len(trackers) > 0 {
		out.Summary.AvgExpense = out.Summary.TotalExpense / float64(len(trackers))
	}
	return out, nil
}

func (s *TrackerService) ExpenseSummary(ctx context.Context, user *models.User) (*ExpenseSummary, error) {
	userID := user.ID.Hex()
	now := s.now()
	year, month := now.Year(), int(now.Month())
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}

	trackers, err := s.expenses.ListExpenseTrackers(ctx, userID, prevYear, prevMonth, year, month)
	if err != nil {
		return nil, Internal("list expense trackers", err)
	}
	yearTrackers, err := s.expenses.ListExpenseTrackers(ctx, userID, year, 1, year, 12)
	if err != nil {
		return nil, Internal("list expense trackers", err)
	}

	var current, previous models.ExpenseTracker
	for _, t := range trackers {
		switch {
		case t.Year == year && t.Month == month:
			current = t
		case t.Year == prevYear && t.Month == prevMonth:
			previous = t
		}
	}

	summary := &ExpenseSummary{}
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, now.Location()).Day()
	summary.CurrentMonth = CurrentMonthExpense{
		Year:              year,
		Month:             month,
		Expense:           current.TotalExpense,
		Budget:            current.Budget,
		BudgetRemaining:   current.Budget - current.TotalExpense,
		Savings:           current.Savings,
		CategoryBreakdown: current.Categories,
		DailyAverage:      current.TotalExpense / float64(daysInMonth),
	}
	if current.Budget > 0 {
		summary.CurrentMonth.BudgetPercentUsed = current.TotalExpense / current.Budget * 100
	}
	summary.PreviousMonth = MonthExpense{Year: prevYear, Month: prevMonth, Expense: previous.TotalExpense}
	for _, t := range yearTrackers {
		summary.YearToDate.Expense += t.TotalExpense
	}
	if len(yearTrackers) > 0 {
		summary.YearToDate.MonthlyAverage = summary.YearToDate.Expense / float64(len(yearTrackers))
	}
	if previous.TotalExpense > 0 {
		summary.Comparison.MonthOverMonthChange = (current.TotalExpense - previous.TotalExpense) / previous.TotalExpense * 100
	}
	return summary, nil
}

// SetBudget sets the budget of a month, defaulting to the current one.
func (s *TrackerService) SetBudget(ctx context.Context, user *models.User, budget float64, year, month int) (*models.ExpenseTracker, error) {
	if budget < 0 {
		return nil, Validation("Budget cannot be negative")
	}
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if !validMonth(year, month) {
		return nil, Validation("Invalid year or month format")
	}
	tracker, err := s.expenses.SetBudget(ctx, user.ID.Hex(), year, month, budget)
	if err != nil {
		return nil, Internal("update budget", err)
	}
	return tracker, nil
}
