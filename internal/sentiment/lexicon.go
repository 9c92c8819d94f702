package sentiment

// Word polarities in [-1, 1]. Entries ending in "*" match any token with
// that prefix, which covers Finnish inflection ("hyvä*" → hyvää, hyvän).
var lexicon = map[string]float64{
	// English
	"good": 0.7, "great": 0.8, "excellent": 1.0, "best": 1.0, "better": 0.5,
	"positive": 0.23, "success": 0.3, "successful": 0.75, "strong": 0.43,
	"growth": 0.3, "grow": 0.2, "growing": 0.2, "record": 0.2, "win": 0.8,
	"wins": 0.8, "award": 0.4, "happy": 0.8, "love": 0.5, "popular": 0.6,
	"improve": 0.3, "improved": 0.3, "profit": 0.3, "innovative": 0.5,
	"fresh": 0.3, "healthy": 0.5, "sustainable": 0.3, "delicious": 1.0,
	"new": 0.14, "nice": 0.6, "wonderful": 1.0, "amazing": 0.6,
	"bad": -0.7, "worse": -0.4, "worst": -1.0, "poor": -0.4, "negative": -0.3,
	"weak": -0.38, "loss": -0.3, "losses": -0.3, "decline": -0.3, "fall": -0.2,
	"crisis": -0.5, "recall": -0.4, "layoffs": -0.5, "lawsuit": -0.4,
	"scandal": -0.6, "fraud": -0.8, "fail": -0.5, "failed": -0.5,
	"failure": -0.32, "problem": -0.3, "problems": -0.3, "risk": -0.2,
	"terrible": -1.0, "awful": -1.0, "sad": -0.5, "angry": -0.5,
	"dangerous": -0.6, "unhealthy": -0.5, "expensive": -0.5, "cut": -0.2,

	// Finnish
	"hyvä*": 0.7, "hyvin": 0.6, "erinomai*": 1.0, "paras": 1.0, "parhai*": 1.0,
	"parempi*": 0.5, "positiivi*": 0.4, "menesty*": 0.6, "kasvu*": 0.3,
	"kasva*": 0.3, "kasvatt*": 0.3, "vahv*": 0.4, "voitt*": 0.7, "palkin*": 0.5,
	"palkit*": 0.5, "suosi*": 0.5, "ennätys*": 0.4, "iloi*": 0.7, "onnistu*": 0.6,
	"parantu*": 0.4, "paransi": 0.4, "tuore*": 0.3, "terveelli*": 0.5,
	"herkulli*": 0.9, "maistu*": 0.5, "uutuu*": 0.3, "innovat*": 0.5,
	"vastuulli*": 0.3, "kestävä*": 0.3, "voitollin*": 0.5, "tyytyväi*": 0.6,
	"huono*": -0.7, "heikko*": -0.4, "heiken*": -0.4, "heikke*": -0.4,
	"negatiivi*": -0.4, "tappio*": -0.5, "lasku*": -0.3, "laski": -0.3,
	"kriisi*": -0.6, "takaisinve*": -0.5, "irtisano*": -0.5, "yt-neuvottel*": -0.5,
	"muutosneuvottel*": -0.4, "kanne*": -0.4, "skandaal*": -0.7, "huijau*": -0.8,
	"petos*": -0.8, "epäonnist*": -0.6, "ongelm*": -0.4, "riski*": -0.2,
	"kallis": -0.4, "kallii*": -0.4, "hinnankoro*": -0.3, "vaaralli*": -0.6,
	"salmonell*": -0.7, "listeri*": -0.7, "kohu*": -0.4, "kritiik*": -0.4,
	"kritisoi*": -0.4, "boikot*": -0.6, "surulli*": -0.5, "vihai*": -0.5,
}

// Multipliers applied to the next sentiment word.
var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "highly": 1.3, "so": 1.2,
	"most": 1.3, "quite": 1.1, "slightly": 0.6, "somewhat": 0.7,
	"erittäin": 1.5, "todella": 1.3, "tosi": 1.3, "aivan": 1.2,
	"melko": 0.8, "hieman": 0.6, "vähän": 0.6, "äärimmäisen": 1.5,
}

// Negators flip the polarity of the next sentiment word within
// negationWindow tokens.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "without": true,
	"ei": true, "eikä": true, "en": true, "et": true, "emme": true, "eivät": true,
	"ilman": true,
}
