package webtab

import "net/url"

// IsValidURL reports whether s is an absolute URL with both a scheme and a
// host. It never touches the network.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
