package main

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/repository"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/validator"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserType  string `json:"userType"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	if !validator.Required(req.FirstName) || !validator.Required(req.LastName) {
		app.fail(w, http.StatusBadRequest, "First and last name are required")
		return
	}
	if !validator.Email(req.Email) {
		app.fail(w, http.StatusBadRequest, "Please enter a valid email address")
		return
	}
	if !validator.MinLength(req.Password, 6) {
		app.fail(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	// self-registration never grants elevated roles
	user, err := app.users.Insert(r.Context(), models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserType:  models.RoleCustomer,
		Phone:     req.Phone,
		Address:   req.Address,
	}, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			app.fail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		app.serverError(w, err)
		return
	}

	token, err := app.createToken(user.ID, user.UserType)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{"success": true, "user": user, "token": token})
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}

	user, err := app.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			app.fail(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		app.serverError(w, err)
		return
	}

	token, err := app.createToken(user.ID, user.UserType)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{"success": true, "user": user, "token": token})
}

func (app *application) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.users.GetAll(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(users), "users": users})
}

func (app *application) createUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	if req.UserType != "" && req.UserType != models.RoleCustomer &&
		req.UserType != models.RoleSupplier && req.UserType != models.RoleAdmin {
		app.fail(w, http.StatusBadRequest, "Invalid user type")
		return
	}
	if !validator.Email(req.Email) {
		app.fail(w, http.StatusBadRequest, "Please enter a valid email address")
		return
	}
	if !validator.MinLength(req.Password, 6) {
		app.fail(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	user, err := app.users.Insert(r.Context(), models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserType:  req.UserType,
		Phone:     req.Phone,
		Address:   req.Address,
	}, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			app.fail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{"success": true, "user": user})
}

func (app *application) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.fail(w, http.StatusNotFound, "User not found")
		return
	}

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		UserType  string `json:"userType"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}

	if req.UserType != "" && req.UserType != models.RoleCustomer &&
		req.UserType != models.RoleSupplier && req.UserType != models.RoleAdmin {
		app.fail(w, http.StatusBadRequest, "Invalid user type")
		return
	}

	err = app.users.Update(r.Context(), id, models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserType:  req.UserType,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "User not found")
			return
		}
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "User updated successfully"})
}

func (app *application) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.fail(w, http.StatusNotFound, "User not found")
		return
	}

	if err := app.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "User not found")
			return
		}
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "User deleted successfully"})
}
