package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fintrack/fintrack/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CredentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenDTO struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Authenticate godoc
// @Summary Obtain a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsDTO true "Username and password"
// @Success 200 {object} TokenDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid credentials"
// @Router /auth [post]
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	log.Trace("Authenticating")
	var credentials CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	token, err := h.service.Authenticate(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid credentials", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TokenDTO{Token: token.Value.String(), Type: TokenType})
}
