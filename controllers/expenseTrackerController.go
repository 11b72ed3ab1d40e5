package controller

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type budgetRequest struct {
	Budget *float64 `json:"budget" validate:"required"`
	Year   int      `json:"year"`
	Month  int      `json:"month"`
}

// intParam parses a path or query value; malformed values become -1 so the
// service rejects them as out of range.
func intParam(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return v
}

func (c *Controller) GetExpenseTrackerByMonth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	vars := mux.Vars(r)
	tracker, err := c.Trackers.ExpensesIn(ctx, currentUser(r), intParam(vars["year"]), intParam(vars["month"]))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracker)
}

func (c *Controller) GetExpenseTrackerByRange(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	q := r.URL.Query()
	report, err := c.Trackers.ExpenseRange(ctx, currentUser(r),
		intParam(q.Get("startYear")), intParam(q.Get("startMonth")),
		intParam(q.Get("endYear")), intParam(q.Get("endMonth")))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (c *Controller) GetExpenseSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	summary, err := c.Trackers.ExpenseSummary(ctx, currentUser(r))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (c *Controller) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req budgetRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	tracker, err := c.Trackers.SetBudget(ctx, currentUser(r), *req.Budget, req.Year, req.Month)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Budget updated",
		"budget":  tracker.Budget,
		"savings": tracker.Savings,
		"year":    tracker.Year,
		"month":   tracker.Month,
	})
}
