// Package site renders the portfolio table and assembles the final pages.
package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/evanmarlow/givesite/internal/model"
)

// Entry pairs an organization with its resolved icon filename. An empty
// Icon renders the fallback glyph.
type Entry struct {
	Org  model.Organization
	Icon string
}

type badge struct {
	emoji string
	label string
}

var scopeBadges = map[string]badge{
	"Local":    {"🏘️", "Local Giving"},
	"National": {"🇺🇸", "National Giving"},
	"Global":   {"🌍", "Global Giving"},
}

var categoryBadges = map[string]badge{
	"education":   {"🎓", "Education"},
	"environment": {"🌿", "Environment"},
	"homeless":    {"🏠", "Housing & Stability"},
	"church":      {"🙏", "Faith & Community"},
	"food":        {"🍎", "Food Security"},
	"justice":     {"⚖️", "Justice"},
	"health":      {"🩺", "Health"},
}

const (
	defaultSummary = "Details coming soon."
	defaultWhy     = "Personal note coming soon while we document this grant."
	emptyBadge     = `<span class="badge-empty" aria-hidden="true"></span>`
)

func esc(s string) string { return template.HTMLEscapeString(s) }

// orDefault returns fallback when s is blank.
func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// RenderTableRows produces the <tr> rows of the portfolio table, one per
// entry, in input order.
func RenderTableRows(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		renderRow(&b, e)
	}
	return b.String()
}

func renderRow(b *strings.Builder, e Entry) {
	org := e.Org

	iconHTML := `<span class="favicon-fallback" aria-hidden="true">🌐</span>`
	if e.Icon != "" {
		iconHTML = fmt.Sprintf(
			`<img class="favicon" src="favicon/%s" alt="" aria-hidden="true" loading="lazy">`,
			esc(e.Icon))
	}

	nameHTML := fmt.Sprintf(`<span class="org-name">%s</span>`, esc(org.Name))
	if website := strings.TrimSpace(org.Website); website != "" {
		href := website
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			href = "https://" + href
		}
		nameHTML = fmt.Sprintf(
			`<a class="org-name" href="%s" target="_blank" rel="noreferrer">%s</a>`,
			esc(href), esc(org.Name))
	}

	scope, ok := scopeBadges[strings.TrimSpace(org.Class)]
	if !ok {
		scope = badge{"❓", "Undesignated"}
	}
	category, ok := categoryBadges[strings.ToLower(strings.TrimSpace(org.Reason))]
	if !ok {
		category = badge{"❓", orDefault(org.Reason, "Focus pending")}
	}

	cnHTML := emptyBadge
	if cn := strings.TrimSpace(org.CharityNavigator); cn != "" {
		cnHTML = fmt.Sprintf(
			`<a class="badge-link" href="%s" target="_blank" rel="noreferrer">`+
				`<img class="badge-image" src="images/cn.png" alt="Charity Navigator logo" loading="lazy"></a>`,
			esc(cn))
	}
	gsHTML := emptyBadge
	if gs := strings.TrimSpace(org.GuideStar); gs != "" {
		gsHTML = fmt.Sprintf(
			`<a class="badge-link" href="%s" target="_blank" rel="noreferrer">`+
				`<img class="badge-image" src="images/gs.jpeg" alt="GuideStar logo" loading="lazy"></a>`,
			esc(gs))
	}

	card := fmt.Sprintf(
		`<div class="org-card">%s<div class="org-card-content"><div>%s</div><span class="summary">%s</span></div></div>`,
		iconHTML, nameHTML, esc(orDefault(org.Summary, defaultSummary)))

	fmt.Fprintf(b, "    <tr>\n")
	fmt.Fprintf(b, "      <td class=\"org\">%s</td>\n", card)
	fmt.Fprintf(b, "      <td class=\"scope\"><span class=\"emoji\" title=\"%s\">%s</span></td>\n",
		esc(scope.label), scope.emoji)
	fmt.Fprintf(b, "      <td class=\"category\"><span class=\"emoji\" title=\"%s\">%s</span></td>\n",
		esc(category.label), category.emoji)
	fmt.Fprintf(b, "      <td class=\"ratings\">%s%s</td>\n", cnHTML, gsHTML)
	fmt.Fprintf(b, "      <td class=\"notes\"><span class=\"why\">%s</span></td>\n",
		esc(orDefault(org.Why, defaultWhy)))
	fmt.Fprintf(b, "    </tr>\n")
}
