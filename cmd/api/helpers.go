package main

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

// envelope is the common response shape: {"success": bool, ...}.
type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.errorLog.Println(err)
	}
}

// fail writes a {"success": false, "message": ...} envelope.
func (app *application) fail(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, envelope{"success": false, "message": message})
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.errorLog.Output(2, err.Error()+"\n"+string(debug.Stack()))
	app.fail(w, http.StatusInternalServerError, "Server error")
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		app.fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (app *application) healthcheck(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "status": "ok"})
}
