package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/service"
)

type statusChangeResponse struct {
	Message  string                   `json:"message"`
	Status   domain.CampaignStatus    `json:"status"`
	Warnings []service.CleanupWarning `json:"warnings,omitempty"`
}

func (h *handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	ownerUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		writeError(w, err)
		return
	}

	in, err := campaignInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cover, err := formUpload(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}
	gallery, err := formUploads(r, "gallery_files")
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.svc.Campaigns.CreateCampaign(r.Context(), ownerUID, in, cover, gallery)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func campaignInput(r *http.Request) (domain.CampaignInput, error) {
	goal, err := formFloat(r, "goal_amount")
	if err != nil {
		return domain.CampaignInput{}, err
	}
	showName, err := formBool(r, "show_name_publicly", true)
	if err != nil {
		return domain.CampaignInput{}, err
	}
	return domain.CampaignInput{
		Title:            r.FormValue("title"),
		Category:         r.FormValue("category"),
		Story:            r.FormValue("story"),
		GoalAmount:       goal,
		Deadline:         r.FormValue("deadline"),
		BankAccountNo:    r.FormValue("bank_account_no"),
		BankName:         r.FormValue("bank_name"),
		ShowNamePublicly: showName,
	}, nil
}

func (h *handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Campaigns.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Campaigns.GetCampaign(r.Context(), mux.Vars(r)["request_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) listCampaignsByOwner(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.Campaigns.ListCampaignsByOwner(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *handler) verifyCampaign(w http.ResponseWriter, r *http.Request) {
	h.setCampaignStatus(w, r, domain.CampaignStatusVerified, "Request approved successfully")
}

func (h *handler) rejectCampaign(w http.ResponseWriter, r *http.Request) {
	h.setCampaignStatus(w, r, domain.CampaignStatusRejected, "Request rejected")
}

func (h *handler) setCampaignStatus(w http.ResponseWriter, r *http.Request, status domain.CampaignStatus, message string) {
	adminUID, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	warnings, err := h.svc.Campaigns.SetStatus(r.Context(), adminUID, mux.Vars(r)["request_id"], status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusChangeResponse{Message: message, Status: status, Warnings: warnings})
}

func (h *handler) initiateChat(w http.ResponseWriter, r *http.Request) {
	uid, err := callerUID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)
	session, err := h.svc.Chats.InitiateChat(r.Context(), uid, vars["request_id"], vars["donor_uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *handler) generateStory(w http.ResponseWriter, r *http.Request) {
	var in domain.StoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	story, err := h.svc.Stories.GenerateStory(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"story": story})
}
