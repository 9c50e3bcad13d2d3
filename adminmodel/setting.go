package adminmodel

type CoreSetting struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Logo           string  `json:"logo"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	Maps           *string `json:"maps"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// EditorKey is the third-party editor key held by the setting backend
type EditorKey struct {
	APIKey       string `json:"api_key"`
	IsConfigured bool   `json:"is_configured"`
}

type ConfigKeys struct {
	TinyMCE EditorKey `json:"tinymce"`
}
