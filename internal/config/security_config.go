package config

type SecurityLevel int

const (
	SecurityPublic        SecurityLevel = iota // No authentication
	SecurityAuthenticated                      // Verified bearer token required
	SecurityAdmin                              // Bearer token required; admin role checked by the service
)

// EndpointSecurityConfig maps named HTTP routes to their required security level.
// Routes missing from the table are treated as SecurityAuthenticated.
var EndpointSecurityConfig = map[string]SecurityLevel{
	"Root":     SecurityPublic,
	"Download": SecurityPublic,

	// Users
	"UserSignup":  SecurityAuthenticated,
	"UserProfile": SecurityAuthenticated,
	"UserList":    SecurityAdmin,
	"UserVerify":  SecurityAdmin,
	"UserDelete":  SecurityAdmin,

	// Campaigns
	"CampaignCreate":       SecurityAuthenticated,
	"CampaignList":         SecurityPublic,
	"CampaignGet":          SecurityPublic,
	"CampaignVerify":       SecurityAdmin,
	"CampaignReject":       SecurityAdmin,
	"CampaignListByOwner":  SecurityAuthenticated,
	"CampaignInitiateChat": SecurityAuthenticated,
	"CampaignStory":        SecurityPublic,

	// Donations
	"DonationCreate":      SecurityAuthenticated,
	"DonationList":        SecurityAdmin,
	"DonationListByDonor": SecurityAuthenticated,

	// Sponsors
	"SponsorDeals":         SecurityPublic,
	"SponsorGenerateTheme": SecurityPublic,
	"SponsorSubmit":        SecurityPublic,
	"SponsorList":          SecurityAdmin,
	"SponsorUpdate":        SecurityAdmin,
	"SponsorActive":        SecurityPublic,

	// Verification
	"VerificationDeals":  SecurityPublic,
	"VerificationSubmit": SecurityAuthenticated,
	"VerificationList":   SecurityAdmin,
	"VerificationUpdate": SecurityAdmin,
}

// RouteSecurity returns the security level of a named route.
func RouteSecurity(name string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[name]; ok {
		return level
	}
	return SecurityAuthenticated
}
