package dashboard

// User-facing text. The interface language is Finnish.
const (
	AppTitle = "Kilpailija-analytiikka"

	MenuTitle      = "Valikko"
	MenuNews       = "Pääsivu – uutiset"
	MenuComparison = "Vertailu"

	NewsTitle        = "Kilpailija-analytiikka – uutiset (viimeiset 6 kk)"
	NewsInputLabel   = "Kilpailijan nimi"
	NewsHeadingFmt   = "Viimeisimmät uutiset aiheesta: %s"
	NewsFetchFailed  = "Uutisten hakeminen epäonnistui: HTTP %d"
	NewsFetchFailedE = "Uutisten hakeminen epäonnistui: %v"
	NewsNoResults    = "Ei uutisia haun perusteella."
	NewsTrendTitle   = "Hakutrendi (simuloitu)"
	NewsReadMore     = "Avaa artikkeli"

	ComparisonTitle      = "Usean kilpailijan vertailu"
	ComparisonCaptionFmt = "Näytetään data ajalta: %s"
	ComparisonSelect     = "Valitse brändit"
	ComparisonApply      = "Päivitä"
	PanelCounts          = "Uutismäärä per brändi"
	PanelTrends          = "Trendikäyrät"
	PanelSentiment       = "Tunnelma-jakaumat"
	ComparisonFailed     = "Vertailudatan hakeminen epäonnistui: %v"
	SimulatedNote        = "Luvut ovat simuloituja."
)
