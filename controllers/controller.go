package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	middleware "github.com/Ayush-478/Veggio/middlewares"
	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/services"
)

var validate = validator.New()

// Controller holds the services behind the HTTP handlers.
type Controller struct {
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Orders   *services.OrderService
	Chat     *services.ChatService
	Trackers *services.TrackerService
	Users    *services.UserService
	Hub      *services.RealtimeHub
	Logger   *zap.Logger
	Timeout  time.Duration
	// PongWait is how long a websocket may stay silent, pongs included.
	PongWait time.Duration
}

func (c *Controller) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": status < 400,
		"message": message,
	})
}

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:      http.StatusBadRequest,
	services.KindNotFound:        http.StatusNotFound,
	services.KindAuthorization:   http.StatusForbidden,
	services.KindConflict:        http.StatusConflict,
	services.KindUnauthenticated: http.StatusUnauthorized,
}

// handleError answers with the status of the error's kind. Internal errors
// are logged and hidden behind a generic message.
func (c *Controller) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		if status, ok := statusByKind[svcErr.Kind]; ok {
			writeMessage(w, status, svcErr.Message)
			return
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.Logger.Warn("request timed out", zap.String("path", r.URL.Path), zap.String("request_id", middleware.RequestID(r.Context())))
		writeMessage(w, http.StatusGatewayTimeout, "Request timed out")
		return
	}
	c.Logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.Error(err))
	writeMessage(w, http.StatusInternalServerError, "Server error")
}

// decode reads a JSON body into dst and validates its struct tags.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.Validation("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return services.Validation("%s", validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Namespace()+" failed on the '"+fe.Tag()+"' rule")
	}
	return strings.Join(msgs, "; ")
}

func currentUser(r *http.Request) *models.User {
	return middleware.GetUserFromContext(r)
}
