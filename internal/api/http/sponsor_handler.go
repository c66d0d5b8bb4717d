package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/service"
)

type sponsorUpdateResponse struct {
	*domain.Sponsor
	Warnings []service.CleanupWarning `json:"warnings,omitempty"`
}

func (h *handler) listSponsorDeals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Sponsors.ListDeals())
}

func (h *handler) generateTheme(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		writeError(w, err)
		return
	}
	logo, err := formUpload(r, "logo_file")
	if err != nil {
		writeError(w, err)
		return
	}
	theme, err := h.svc.Sponsors.GenerateTheme(r.Context(), logo.Data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

func (h *handler) submitSponsor(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		writeError(w, err)
		return
	}
	logo, err := formUpload(r, "logo_file")
	if err != nil {
		writeError(w, err)
		return
	}
	in := domain.SponsorInput{
		SponsorName:     r.FormValue("sponsor_name"),
		ContactEmail:    r.FormValue("contact_email"),
		DealID:          r.FormValue("deal_id"),
		PrimaryColorHex: r.FormValue("primary_color_hex"),
		LightBgHex:      r.FormValue("light_bg_hex"),
		WebsiteURL:      r.FormValue("website_url"),
	}

	sponsor, err := h.svc.Sponsors.Submit(r.Context(), in, logo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsor)
}

func (h *handler) listSponsors(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sponsors, err := h.svc.Sponsors.ListAll(r.Context(), adminUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsors)
}

func (h *handler) updateSponsor(w http.ResponseWriter, r *http.Request) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.SponsorPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	sponsor, warnings, err := h.svc.Sponsors.Update(r.Context(), adminUID, mux.Vars(r)["sponsor_id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsorUpdateResponse{Sponsor: sponsor, Warnings: warnings})
}

// activeSponsor answers null when no theme is active.
func (h *handler) activeSponsor(w http.ResponseWriter, r *http.Request) {
	sponsor, err := h.svc.Sponsors.GetActiveTheme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsor)
}
