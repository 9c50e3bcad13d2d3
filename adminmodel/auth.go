package adminmodel

// LoginRequest is posted to the core backend's login endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the refresh credential created at login. The access
// credential arrives as a cookie.
type LoginResponse struct {
	Message      string `json:"message"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type User struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Gender    string  `json:"gender,omitempty"`
	Birthdate string  `json:"birthdate,omitempty"`
	Photo     *string `json:"photo"`
	Active    string  `json:"active"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// MenuItem is one entry of the navigation tree granted to the profile
type MenuItem struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon"`
	URL      string     `json:"url"`
	Children []MenuItem `json:"children"`
}

// Profile is the signed-in user as returned by GET profile
type Profile struct {
	Profile User       `json:"profile"`
	Menu    []MenuItem `json:"menu"`
}

// Permission lists the CRUD rights of the profile on one menu
type Permission struct {
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}
