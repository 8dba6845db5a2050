package goquery

import (
	"fmt"

	"github.com/fwojciec/filmcard"
)

// Selectors shared by several fields of the current title page layout.
const (
	jsonLD         = `script[type="application/ld+json"]`
	principalLabel = `li[data-testid="title-pc-principal-credit"]:haschild(.ipc-metadata-list-item__label:containsOwn(%q))`
)

// Strip lists used by the legacy layout, where each value sits in a block
// headed by its label.
var (
	stripStars    = []string{"Stars: ", "| See full cast and crew", "| See full cast & crew", "»"}
	stripPlotKeys = []string{" | See more", "Plot Keywords: ", "»"}
	stripDirector = []string{"Director: ", "Directors: "}
)

// DefaultRules returns the rule table for IMDb title pages.
//
// For each field, rules for the legacy layout (itemprop microdata and
// h4-labelled blocks) come first in their historical order, followed by
// the data-testid layout and finally the page's JSON-LD metadata. The
// returned table is freshly allocated and may be modified by the caller.
func DefaultRules() filmcard.RuleTable {
	return filmcard.RuleTable{
		filmcard.FieldTitle: {
			{Selector: "head > title", Transform: filmcard.OwnText(), Strip: []string{" - IMDb"}},
		},
		filmcard.FieldName: {
			{Selector: `h1 > span[itemprop="name"]`, Transform: filmcard.OwnText()},
			{Selector: `h1[itemprop="name"]`, Transform: filmcard.OwnText()},
			{Selector: `h1[data-testid="hero__pageTitle"] .hero__primary-text`, Transform: filmcard.FullText()},
			{Selector: `h1[data-testid="hero__pageTitle"]`, Transform: filmcard.FullText()},
			{Selector: jsonLD, Transform: filmcard.JSONLD("name")},
		},
		filmcard.FieldGenres: {
			{Selector: `div[itemprop="genre"]`, Transform: filmcard.FullText(), Strip: []string{"Genres: "}},
			{Selector: `div[data-testid="genres"] a`, Transform: filmcard.JoinFullText(" | ")},
			{Selector: `div[data-testid="interests"] a`, Transform: filmcard.JoinFullText(" | ")},
			{Selector: jsonLD, Transform: filmcard.JSONLD("genre")},
		},
		filmcard.FieldLanguage: {
			{Selector: `div:haschild(h4:containsOwn("Language:"))`, Transform: filmcard.FullText(), Strip: []string{"Language: "}},
			{Selector: `li[data-testid="title-details-languages"] li a`, Transform: filmcard.JoinFullText(", ")},
		},
		filmcard.FieldStars: {
			{Selector: `div:haschild(h4:containsOwn("Stars:"))`, Transform: filmcard.FullText(), Strip: stripStars},
			{Selector: principal("Stars") + " li a", Transform: filmcard.JoinFullText(", ")},
			{Selector: jsonLD, Transform: filmcard.JSONLD("actor", "name")},
		},
		filmcard.FieldPlotKeys: {
			{Selector: `span[itemprop="keywords"]`, Transform: filmcard.JoinOwnText(" | ")},
			{Selector: `div:haschild(h4:containsOwn("Plot Keywords:"))`, Transform: filmcard.FullText(), Strip: stripPlotKeys},
			{Selector: jsonLD, Transform: filmcard.JSONLD("keywords")},
		},
		filmcard.FieldRating: {
			{Selector: "div.titlePageSprite.star-box-giga-star", Transform: filmcard.OwnText()},
			{Selector: `span[itemprop="ratingValue"]`, Transform: filmcard.OwnText()},
			{Selector: `div[data-testid="hero-rating-bar__aggregate-rating__score"] > span:first-child`, Transform: filmcard.OwnText()},
			{Selector: jsonLD, Transform: filmcard.JSONLD("aggregateRating", "ratingValue")},
		},
		filmcard.FieldDescription: {
			{Selector: `p[itemprop="description"]`, Transform: filmcard.FullText()},
			{Selector: `div[itemprop="description"]`, Transform: filmcard.FullText()},
			{Selector: `span[data-testid="plot-xl"]`, Transform: filmcard.FullText()},
			{Selector: `p[data-testid="plot"]`, Transform: filmcard.FullText()},
			{Selector: jsonLD, Transform: filmcard.JSONLD("description")},
		},
		filmcard.FieldDirector: {
			{Selector: `div:haschild(h4:containsOwn("Director"))`, Transform: filmcard.FullText(), Strip: stripDirector},
			{Selector: principal("Director") + " li a", Transform: filmcard.JoinFullText(", ")},
			{Selector: jsonLD, Transform: filmcard.JSONLD("director", "name")},
		},
		filmcard.FieldCreator: {
			{Selector: `div:haschild(h4:containsOwn("Creator:")) > span[itemprop="creator"] > a > span`, Transform: filmcard.OwnText()},
			{Selector: principal("Creator") + " li a", Transform: filmcard.JoinFullText(", ")},
			{Selector: jsonLD, Transform: filmcard.JSONLD("creator", "name")},
		},
		filmcard.FieldRuntime: {
			{Selector: `time[itemprop="duration"]`, Transform: filmcard.OwnText()},
			{Selector: `div:haschild(h4:containsOwn("Runtime:")) > time`, Transform: filmcard.OwnText()},
			{Selector: `li[data-testid="title-techspec_runtime"] .ipc-metadata-list-item__content-container`, Transform: filmcard.FullText()},
		},
	}
}

// principal selects the principal-credit row whose label contains label.
func principal(label string) string {
	return fmt.Sprintf(principalLabel, label)
}
