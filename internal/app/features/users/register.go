package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/huddlehq/huddle/internal/app/store/users"
	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/app/system/inputval"
	"github.com/huddlehq/huddle/internal/app/system/normalize"
	"github.com/huddlehq/huddle/internal/app/system/timeouts"
	"github.com/huddlehq/huddle/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HandleRegister creates a new account. The password is bcrypt-hashed
// before it ever reaches the store.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if normalize.Name(in.Name) == "" {
		httpjson.Error(w, h.Log, apperr.Invalid("Name is required"))
		return
	}
	if !inputval.IsValidEmail(in.Email) {
		httpjson.Error(w, h.Log, apperr.Invalid("Email must be valid"))
		return
	}
	if in.Password == "" {
		httpjson.Error(w, h.Log, apperr.Invalid("Password is required"))
		return
	}
	if in.ConfirmPassword != in.Password {
		httpjson.Error(w, h.Log, apperr.Invalid("Password confirmation does not match password"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Active:       true,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, h.Log, apperr.Conflict("Email is already exist."))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal(err))
		return
	}

	httpjson.Created(w, user, "User created successfully")
}
