package sessions

import (
	"sync"

	"github.com/jrsteele09/go-admin-client/adminmodel"
)

// AppState is the process-wide state shared by every client: the signed-in
// profile and the organization's core setting. Terminal authorization failures
// clear the profile.
type AppState struct {
	lock        sync.RWMutex
	profile     *adminmodel.Profile
	coreSetting *adminmodel.CoreSetting
}

func New() *AppState {
	return &AppState{}
}

// SetProfile replaces the profile; nil signs the user out
func (s *AppState) SetProfile(p *adminmodel.Profile) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.profile = p
}

func (s *AppState) Profile() *adminmodel.Profile {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.profile
}

// ClearProfile signs the user out locally
func (s *AppState) ClearProfile() {
	s.SetProfile(nil)
}

// SignedIn reports whether a profile is loaded
func (s *AppState) SignedIn() bool {
	return s.Profile() != nil
}

func (s *AppState) SetCoreSetting(c *adminmodel.CoreSetting) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.coreSetting = c
}

func (s *AppState) CoreSetting() *adminmodel.CoreSetting {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.coreSetting
}
