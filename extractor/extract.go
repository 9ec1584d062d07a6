// Package extractor turns rendered page HTML and outbound link hrefs into
// structured contact fields: email addresses, phone numbers and social
// profile links.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/scrapo/patterns"
)

// Contact holds the extracted fields for one page. Emails and Phones carry
// set semantics; Socials holds at most one URL per platform.
type Contact struct {
	Emails  []string
	Phones  []string
	Socials map[string]string
}

// Extract runs the pattern library over the raw HTML and the outbound links
// of a page. Emails are matched against the raw HTML; phone candidates are
// matched against tag-stripped text and run through FilterPhones; social
// links are first-match-wins per platform in link order.
func Extract(html string, links []string) Contact {
	c := Contact{
		Emails:  []string{},
		Phones:  []string{},
		Socials: make(map[string]string, len(patterns.Platforms)),
	}
	for _, p := range patterns.Platforms {
		c.Socials[p] = ""
	}
	if html == "" && len(links) == 0 {
		return c
	}

	// Emails from the raw HTML, plus mailto: hrefs.
	seenEmails := make(map[string]struct{})
	addEmail := func(email string) {
		email = strings.TrimSpace(email)
		if email == "" {
			return
		}
		if _, dup := seenEmails[email]; dup {
			return
		}
		seenEmails[email] = struct{}{}
		c.Emails = append(c.Emails, email)
	}
	for _, m := range patterns.Email.FindAllString(html, -1) {
		addEmail(m)
	}

	// Phone candidates from tag-stripped text, plus tel: hrefs.
	text := stripTags(html)
	rawPhones := patterns.Phone.FindAllString(text, -1)

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			email := strings.TrimPrefix(href, "mailto:")
			if idx := strings.Index(email, "?"); idx != -1 {
				email = email[:idx]
			}
			if patterns.Email.MatchString(email) {
				addEmail(email)
			}
		})
		doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			rawPhones = append(rawPhones, strings.TrimPrefix(href, "tel:"))
		})
	}

	c.Phones = FilterPhones(rawPhones)

	// Socials: first link in link order wins, independently per platform.
	for _, link := range links {
		for _, platform := range patterns.Platforms {
			if c.Socials[platform] != "" {
				continue
			}
			if patterns.Social[platform].MatchString(link) {
				c.Socials[platform] = link
			}
		}
	}

	return c
}

// stripTags drops script and style bodies, then replaces every remaining tag
// with a space so phone numbers split across markup stay separated.
func stripTags(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	inTag := false
	skipUntil := "" // closing tag name while inside script/style
	i := 0
	for i < len(html) {
		ch := html[i]
		if skipUntil != "" {
			if ch == '<' && hasPrefixFold(html[i:], "</"+skipUntil) {
				skipUntil = ""
				inTag = true
			}
			i++
			continue
		}
		switch {
		case ch == '<':
			inTag = true
			if hasPrefixFold(html[i:], "<script") {
				skipUntil = "script"
			} else if hasPrefixFold(html[i:], "<style") {
				skipUntil = "style"
			}
		case ch == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteByte(ch)
		}
		i++
	}
	return b.String()
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
