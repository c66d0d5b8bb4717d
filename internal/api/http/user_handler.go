package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/domain"
)

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	uid, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.Users.RegisterProfile(r.Context(), uid, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	uid, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.svc.Users.GetProfile(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	users, err := h.svc.Users.ListAll(r.Context(), adminUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *handler) verifyUser(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.svc.Users.Verify(r.Context(), adminUID, mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// deleteUser answers 204 on a clean delete and 200 with the warnings when a cleanup step failed.
func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	warnings, err := h.svc.Users.DeleteAccount(r.Context(), adminUID, mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(warnings) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}
