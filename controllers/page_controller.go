package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/aiblog/config"
)

// Site is the configuration-driven content shared by every page.
type Site struct {
	Title        string
	AboutHTML    string
	ContactEmail string
}

// SiteFromConfig copies the site section of cfg.
func SiteFromConfig(cfg config.AppConfig) Site {
	return Site{Title: cfg.SiteTitle, AboutHTML: cfg.AboutHTML, ContactEmail: cfg.ContactEmail}
}

func (s Site) page(title string, data gin.H) gin.H {
	out := gin.H{"SiteTitle": s.Title, "PageTitle": title}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// PageController serves the static about and contact pages.
type PageController struct {
	site Site
}

func NewPageController(site Site) *PageController { return &PageController{site: site} }

// About renders the configured about text; it is operator-controlled HTML.
func (p *PageController) About(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "about.html", p.site.page("About", gin.H{"AboutHTML": p.site.AboutHTML}))
}

// Contact renders the contact page.
func (p *PageController) Contact(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "contact.html", p.site.page("Contact", gin.H{"ContactEmail": p.site.ContactEmail}))
}

// NotFound renders the 404 page for unknown HTML routes.
func (p *PageController) NotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "error.html", p.site.page("Not Found", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "page not found",
	}))
}
