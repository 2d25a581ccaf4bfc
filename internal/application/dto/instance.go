package dto

// Instance describes this server to Mastodon clients. Most fields are
// static; only the URI and contact email depend on deployment.
type Instance struct {
	URI              string         `json:"uri"`
	Title            string         `json:"title"`
	ShortDescription string         `json:"short_description"`
	Description      string         `json:"description"`
	Email            string         `json:"email"`
	Version          string         `json:"version"`
	Stats            InstanceStats  `json:"stats"`
	Thumbnail        *string        `json:"thumbnail"`
	Languages        []string       `json:"languages"`
	Registrations    bool           `json:"registrations"`
	ApprovalRequired bool           `json:"approval_required"`
	InvitesEnabled   bool           `json:"invites_enabled"`
	Configuration    InstanceConfig `json:"configuration"`
	ContactAccount   *struct{}      `json:"contact_account"`
	Rules            []struct{}     `json:"rules"`
}

type InstanceStats struct {
	UserCount   int `json:"user_count"`
	StatusCount int `json:"status_count"`
	DomainCount int `json:"domain_count"`
}

type InstanceConfig struct {
	Statuses StatusesConfig `json:"statuses"`
}

type StatusesConfig struct {
	MaxCharacters       int `json:"max_characters"`
	MaxMediaAttachments int `json:"max_media_attachments"`
}

// NewInstance builds the instance descriptor for a deployment.
func NewInstance(hostURL, email string) *Instance {
	return &Instance{
		URI:              hostURL,
		Title:            "Yurikamome",
		ShortDescription: "Use Twitter with Mastodon clients",
		Description:      "Use Twitter with Mastodon clients",
		Email:            email,
		Version:          "4.2.7",
		Stats:            InstanceStats{UserCount: 1},
		Languages:        []string{},
		Configuration: InstanceConfig{
			Statuses: StatusesConfig{
				MaxCharacters:       280,
				MaxMediaAttachments: 4,
			},
		},
		Rules: []struct{}{},
	}
}
