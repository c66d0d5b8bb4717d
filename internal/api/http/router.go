package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/security"
	"kindnessconnect-backend/internal/service"
	"kindnessconnect-backend/internal/storage"
)

// Services bundles the application services the handlers call.
type Services struct {
	Users        service.UserService
	Campaigns    service.CampaignService
	Donations    service.DonationService
	Chats        service.ChatService
	Sponsors     service.SponsorService
	Verification service.VerificationService
	Stories      service.StoryService
}

type RouterConfig struct {
	Verifier       security.IdentityVerifier
	Files          storage.FileReader // nil when uploads are not served by this process
	AllowedOrigins []string
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 20 << 20

type handler struct {
	svc       Services
	maxUpload int64
}

// NewRouter builds the complete HTTP API. CORS and access logging wrap the router so they
// also cover preflight requests and unmatched paths.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	h := &handler{svc: svc, maxUpload: cfg.MaxUploadBytes}
	if h.maxUpload <= 0 {
		h.maxUpload = defaultMaxUploadBytes
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed"})
	})
	r.Use(AuthMiddleware(cfg.Verifier))

	r.HandleFunc("/", h.root).Methods(http.MethodGet).Name("Root")
	if cfg.Files != nil {
		RegisterFileRoutes(r, cfg.Files)
	}

	users := r.PathPrefix("/users").Subrouter()
	users.HandleFunc("/signup", h.signup).Methods(http.MethodPost).Name("UserSignup")
	users.HandleFunc("/profile", h.getProfile).Methods(http.MethodGet).Name("UserProfile")
	collection(users, h.listUsers, http.MethodGet, "UserList")
	users.HandleFunc("/{uid}/verify", h.verifyUser).Methods(http.MethodPut).Name("UserVerify")
	users.HandleFunc("/{uid}", h.deleteUser).Methods(http.MethodDelete).Name("UserDelete")

	requests := r.PathPrefix("/requests").Subrouter()
	requests.HandleFunc("/generate_story", h.generateStory).Methods(http.MethodPost).Name("CampaignStory")
	collection(requests, h.createCampaign, http.MethodPost, "CampaignCreate")
	collection(requests, h.listCampaigns, http.MethodGet, "CampaignList")
	requests.HandleFunc("/user/{uid}", h.listCampaignsByOwner).Methods(http.MethodGet).Name("CampaignListByOwner")
	requests.HandleFunc("/{request_id}", h.getCampaign).Methods(http.MethodGet).Name("CampaignGet")
	requests.HandleFunc("/{request_id}/verify", h.verifyCampaign).Methods(http.MethodPut).Name("CampaignVerify")
	requests.HandleFunc("/{request_id}/reject", h.rejectCampaign).Methods(http.MethodPut).Name("CampaignReject")
	requests.HandleFunc("/{request_id}/chat/{donor_uid}", h.initiateChat).Methods(http.MethodPost).Name("CampaignInitiateChat")

	donations := r.PathPrefix("/donations").Subrouter()
	collection(donations, h.createDonation, http.MethodPost, "DonationCreate")
	collection(donations, h.listDonations, http.MethodGet, "DonationList")
	donations.HandleFunc("/user/{uid}", h.listDonationsByDonor).Methods(http.MethodGet).Name("DonationListByDonor")

	sponsors := r.PathPrefix("/sponsors").Subrouter()
	sponsors.HandleFunc("/deals", h.listSponsorDeals).Methods(http.MethodGet).Name("SponsorDeals")
	sponsors.HandleFunc("/generate_theme", h.generateTheme).Methods(http.MethodPost).Name("SponsorGenerateTheme")
	sponsors.HandleFunc("/active", h.activeSponsor).Methods(http.MethodGet).Name("SponsorActive")
	collection(sponsors, h.submitSponsor, http.MethodPost, "SponsorSubmit")
	collection(sponsors, h.listSponsors, http.MethodGet, "SponsorList")
	sponsors.HandleFunc("/{sponsor_id}", h.updateSponsor).Methods(http.MethodPut).Name("SponsorUpdate")

	verification := r.PathPrefix("/verification").Subrouter()
	verification.HandleFunc("/deals", h.listVerificationDeals).Methods(http.MethodGet).Name("VerificationDeals")
	collection(verification, h.submitVerification, http.MethodPost, "VerificationSubmit")
	collection(verification, h.listVerifications, http.MethodGet, "VerificationList")
	verification.HandleFunc("/{verification_id}", h.updateVerification).Methods(http.MethodPut).Name("VerificationUpdate")

	return CORSMiddleware(cfg.AllowedOrigins)(LoggingMiddleware(r))
}

// collection registers the collection root with and without a trailing slash. Route names
// must be unique, so the slash form carries a suffix that resolves to the same security level.
func collection(r *mux.Router, fn http.HandlerFunc, method, name string) {
	r.HandleFunc("", fn).Methods(method).Name(name)
	r.HandleFunc("/", fn).Methods(method).Name(name + "/")
}

func (h *handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to KindnessConnect API",
		"status":  "Running",
	})
}
