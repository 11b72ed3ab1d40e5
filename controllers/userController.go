package controller

import (
	"net/http"

	"github.com/Ayush-478/Veggio/services"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type preferencesRequest struct {
	DietaryPreferences []string `json:"dietaryPreferences" validate:"dive,required,max=50"`
}

func (c *Controller) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req services.SignUpInput
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	session, err := c.Users.SignUp(ctx, req)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "User registered successfully", session)
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req services.LoginInput
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	session, err := c.Users.Login(ctx, req)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Login successful", session)
}

func (c *Controller) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req refreshRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	session, err := c.Users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Token refreshed", session)
}

func (c *Controller) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "Profile retrieved successfully", currentUser(r))
}

func (c *Controller) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req preferencesRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	user, err := c.Users.SetPreferences(ctx, currentUser(r), req.DietaryPreferences)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Preferences updated", user)
}
