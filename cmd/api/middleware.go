package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userContextKey = contextKey("authenticatedUser")

type authUser struct {
	ID   primitive.ObjectID
	Role string
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (app *application) measureRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.metrics.RecordRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// createToken issues a bearer JWT for the user, valid for 7 days.
func (app *application) createToken(id primitive.ObjectID, role string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id.Hex(),
		"role": role,
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return t.SignedString(app.jwtSecret)
}

// parseToken verifies a bearer JWT and returns the embedded user identity.
func (app *application) parseToken(token string) (*authUser, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return app.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}
	role, _ := claims["role"].(string)
	return &authUser{ID: id, Role: role}, nil
}

func (app *application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			app.fail(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		user, err := app.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			app.fail(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (app *application) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := app.currentUser(r)
		if user == nil || user.Role != role {
			app.fail(w, http.StatusForbidden, fmt.Sprintf("Only %ss can access this resource", role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) currentUser(r *http.Request) *authUser {
	user, _ := r.Context().Value(userContextKey).(*authUser)
	return user
}
