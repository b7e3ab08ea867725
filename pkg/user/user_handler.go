package user

import (
	"errors"
	"net/http"

	"github.com/fintrack/fintrack/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{userService: userService}
}

// CurrentUser godoc
// @Summary Get current user
// @Description Retrieve the account the bearer token was issued to
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 401 {object} rest.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} rest.ErrorResponse "User not found"
// @Router /user/current [get]
// @Security Bearer
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNoUser):
			rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
		case errors.Is(err, ErrUserNotFound):
			rest.WriteError(w, http.StatusNotFound, "User not found", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, UserDTO{Id: currentUser.Id, Username: currentUser.Username})
}
