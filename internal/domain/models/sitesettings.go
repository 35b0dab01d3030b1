// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is shown in the page header when site_name is not configured.
const DefaultSiteName = "Material Properties Predictor"

// SiteSettings holds the display settings of the site. They come from
// configuration at startup; FooterHTML is sanitized before it is stored here.
type SiteSettings struct {
	SiteName   string
	FooterHTML string
}
