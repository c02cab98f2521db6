package http

import (
	"errors"
	"net/http"

	"activity-signup/internal/service"
)

const outcomeOK = "ok"

func (h *Handler) handleActivitiesList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "activities_list"

	dir, err := h.Activities.ListActivities(r.Context())
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, dir)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	const handlerName = "activity_signup"

	name, err := pathParam(r, "activityName")
	if err != nil {
		h.fail(w, handlerName, "signup", service.ErrBadRequest("invalid activity name"))
		return
	}

	query := r.URL.Query()
	if !query.Has("email") {
		h.fail(w, handlerName, "signup", service.ErrBadRequest("email is required"))
		return
	}

	msg, err := h.Activities.Signup(r.Context(), name, query.Get("email"))
	if err != nil {
		h.fail(w, handlerName, "signup", err)
		return
	}
	h.observe("signup", nil)

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handler) handleUnregister(w http.ResponseWriter, r *http.Request) {
	const handlerName = "activity_unregister"

	name, err := pathParam(r, "activityName")
	if err != nil {
		h.fail(w, handlerName, "unregister", service.ErrBadRequest("invalid activity name"))
		return
	}
	email, err := pathParam(r, "email")
	if err != nil {
		h.fail(w, handlerName, "unregister", service.ErrBadRequest("invalid email"))
		return
	}

	msg, err := h.Activities.Unregister(r.Context(), name, email)
	if err != nil {
		h.fail(w, handlerName, "unregister", err)
		return
	}
	h.observe("unregister", nil)

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handler) fail(w http.ResponseWriter, handlerName, operation string, err error) {
	h.observe(operation, err)
	h.writeError(w, handlerName, err)
}

func (h *Handler) observe(operation string, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = "INTERNAL"
		var appErr *service.AppError
		if errors.As(err, &appErr) {
			outcome = appErr.Code
		}
	}
	h.Metrics.ObserveRegistration(operation, outcome)
}
