package components

import (
	"github.com/Rakhulsr/go-addressbook/app/models"
)

type Tab string

const (
	TabProfile   Tab = "profile"
	TabAddresses Tab = "addresses"
	TabSecurity  Tab = "security"
)

type TabLink struct {
	Tab    Tab
	Label  string
	Active bool
}

var tabLabels = []struct {
	tab   Tab
	label string
}{
	{TabProfile, "Profile"},
	{TabAddresses, "Addresses"},
	{TabSecurity, "Security"},
}

// ParseTab opens the addresses tab when raw is empty or unknown.
func ParseTab(raw string) Tab {
	switch Tab(raw) {
	case TabProfile, TabSecurity:
		return Tab(raw)
	default:
		return TabAddresses
	}
}

// ProfilePage is the tab container of the account area. Only the addresses
// tab does anything; the others are static.
type ProfilePage struct {
	User        *models.User
	ActiveTab   Tab
	AddressBook *AddressBook
}

// NewProfilePage returns false when nobody is signed in, in which case the
// caller sends the visitor to the login page.
func NewProfilePage(user *models.User, tab Tab) (*ProfilePage, bool) {
	if user == nil {
		return nil, false
	}
	return &ProfilePage{User: user, ActiveTab: tab}, true
}

func (p *ProfilePage) Tabs() []TabLink {
	links := make([]TabLink, 0, len(tabLabels))
	for _, t := range tabLabels {
		links = append(links, TabLink{Tab: t.tab, Label: t.label, Active: t.tab == p.ActiveTab})
	}
	return links
}

func (p *ProfilePage) ShowsAddresses() bool {
	return p.ActiveTab == TabAddresses
}
