package probe

import (
	"net/url"
	"strings"
	"time"
)

const (
	SectionRemote = "🔍 Checking Railway deployment..."
	SectionLocal  = "🏠 Checking local deployment..."
)

// DefaultChecks returns the fixed plan: remote root, remote admin, local admin.
// The local root is deliberately not part of the plan.
func DefaultChecks(remoteURL, localURL string, remoteTimeout, localTimeout time.Duration) []Check {
	remote := strings.TrimRight(remoteURL, "/")
	local := strings.TrimRight(localURL, "/")
	return []Check{
		{
			Name:    "Railway deployment",
			Section: SectionRemote,
			URL:     remote,
			Markers: []string{"Quest CMS", "railway"},
			Timeout: remoteTimeout,
		},
		{
			Name:    "Admin interface",
			Section: SectionRemote,
			URL:     adminURL(remote),
			Markers: []string{"Quest CMS", "Dashboard"},
			Timeout: remoteTimeout,
		},
		{
			Name:    "Local deployment",
			Section: SectionLocal,
			URL:     adminURL(local),
			Markers: []string{"Quest CMS"},
			Timeout: localTimeout,
		},
	}
}

// adminURL appends the admin path while keeping any query or fragment intact.
func adminURL(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "/admin"
	}
	return u.JoinPath("admin").String()
}
