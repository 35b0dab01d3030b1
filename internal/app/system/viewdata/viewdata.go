// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/matpredict/internal/app/system/htmlsanitize"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type pageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := pageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	}
type BaseVM struct {
	// Site settings (from configuration)
	SiteName   string
	FooterHTML template.HTML

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Theme       string

	// CSRF protection
	CSRFToken string
	CSRFField template.HTML
}

var (
	mu       sync.RWMutex
	settings = models.SiteSettings{SiteName: models.DefaultSiteName}
)

// Init sets the site settings. Call it once at startup from bootstrap.
// The footer is sanitized here so templates can render it unescaped.
func Init(s models.SiteSettings) {
	if s.SiteName == "" {
		s.SiteName = models.DefaultSiteName
	}
	s.FooterHTML = htmlsanitize.Sanitize(s.FooterHTML)

	mu.Lock()
	settings = s
	mu.Unlock()
}

// Settings returns the current site settings.
func Settings() models.SiteSettings {
	mu.RLock()
	defer mu.RUnlock()
	return settings
}

// NewBaseVM creates a populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	s := Settings()
	return BaseVM{
		SiteName:    s.SiteName,
		FooterHTML:  template.HTML(s.FooterHTML),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
	}
}
