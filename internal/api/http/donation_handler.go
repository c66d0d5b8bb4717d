package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/domain"
)

// IdempotencyKeyHeader lets a client retry a donation without recording it twice.
const IdempotencyKeyHeader = "Idempotency-Key"

func (h *handler) createDonation(w http.ResponseWriter, r *http.Request) {
	donorUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in domain.DonationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	in.DonorUID = donorUID
	in.IdempotencyKey = strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))

	donation, err := h.svc.Donations.RecordDonation(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *handler) listDonationsByDonor(w http.ResponseWriter, r *http.Request) {
	donations, err := h.svc.Donations.ListDonationsByDonor(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donations)
}

func (h *handler) listDonations(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.svc.Donations.ListAllDonations(r.Context(), adminUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
