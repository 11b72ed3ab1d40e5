package controller

import (
	"net/http"

	"github.com/gorilla/mux"
)

type calorieGoalRequest struct {
	CalorieGoal int `json:"calorieGoal"`
}

func (c *Controller) GetCalorieTrackerByDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	tracker, err := c.Trackers.CaloriesOn(ctx, currentUser(r), mux.Vars(r)["date"])
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracker)
}

func (c *Controller) GetCalorieTrackerByRange(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	q := r.URL.Query()
	report, err := c.Trackers.CalorieRange(ctx, currentUser(r), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (c *Controller) GetCalorieSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	summary, err := c.Trackers.CalorieSummary(ctx, currentUser(r))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (c *Controller) UpdateCalorieGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req calorieGoalRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	if err := c.Trackers.SetCalorieGoal(ctx, currentUser(r), req.CalorieGoal); err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Calorie goal updated",
		"calorieGoal": req.CalorieGoal,
	})
}
