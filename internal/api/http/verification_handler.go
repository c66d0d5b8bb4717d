package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/service"
)

type verificationUpdateResponse struct {
	*domain.VerificationRequest
	Warnings []service.CleanupWarning `json:"warnings,omitempty"`
}

func (h *handler) listVerificationDeals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Verification.ListDeals())
}

func (h *handler) submitVerification(w http.ResponseWriter, r *http.Request) {
	requesterUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		writeError(w, err)
		return
	}
	document, err := formUpload(r, "proof_document")
	if err != nil {
		writeError(w, err)
		return
	}
	proof := domain.VerificationProof{
		Description: r.FormValue("proof_description"),
		Document:    document,
	}

	req, err := h.svc.Verification.Submit(r.Context(), requesterUID, r.FormValue("deal_id"), proof)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *handler) listVerifications(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reqs, err := h.svc.Verification.ListAll(r.Context(), adminUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *handler) updateVerification(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.VerificationPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	req, warnings, err := h.svc.Verification.Update(r.Context(), adminUID, mux.Vars(r)["verification_id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verificationUpdateResponse{VerificationRequest: req, Warnings: warnings})
}
