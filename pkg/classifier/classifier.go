// Package classifier maps link URLs to human-readable page categories.
package classifier

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/linkscout/models"
)

// Rule pairs a URL pattern with the category it assigns.
type Rule struct {
	Pattern *regexp.Regexp
	Label   string
}

func rule(pattern, label string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)` + pattern), Label: label}
}

// regionCodes are two-letter language/region tokens. They only match when
// the whole (lowercased) URL is exactly the code.
var regionCodes = []string{
	"en", "us", "ru", "gb", "fr", "es", "it", "de", "pt", "cn", "jp", "kr",
	"au", "nz", "ca", "in", "mx", "br", "za", "nl", "se", "no", "dk", "fi",
	"pl", "ch", "at", "be", "gr", "cz", "sk", "hu", "ie", "tr", "ar", "cl",
	"ve", "co", "pe", "ae", "sa", "il", "sg", "th", "my", "id", "ph", "hk",
	"tw", "vn",
}

// rules is evaluated top-down and the first match wins. Order matters: a
// URL containing both "shop" and "blog" is "Blog and Articles" because
// that rule is listed first.
var rules = []Rule{
	rule(`contact|reach.?us`, "Contact Us"),
	rule(`about|our.?history`, "About Us"),
	rule(`home|index|landing|start|crm`, "Home"),
	rule(`service|our.?service|solution|offerings|consulting`, "Services"),
	rule(`career|job|vacanc`, "Careers"),
	rule(`portfolio|project|case.?stud`, "Portfolio and Projects"),
	rule(`products|catalog|shop.?items|accessories|features|packages|menu`, "Products and Catalog"),
	rule(`team|staff|member|our.?vision|our.?work|our.?people|our.?approach|our.?values|our.?mission|our.?process|leadership`, "Leadership"),
	rule(`technology|digital|tools|systems|platform|software|apps|website|web|hardware`, "Technology and Digital-related"),
	rule(`company|busines|industr|info`, "Business and Company-related"),
	rule(`marketing`, "Marketing"),
	rule(`location|find.?us|direction`, "Location and Directions"),
	rule(`twitter|facebook|instagram|pinterest|linkedin|youtube|snapchat|tiktok|social`, "Social Media"),
	rule(`blog|article`, "Blog and Articles"),
	rule(`api|console|demo|dev|developers`, "Developer"),
	rule(`gallery|image|video|exhibition|galleries`, "Gallery"),
	rule(`shop|store|checkout|cart|basket`, "Shopping"),
	rule(`faq|help|frequently.?asked`, "FAQ"),
	rule(`testimonial|review`, "Testimonials and Reviews"),
	rule(`term|legal|policy|privacy|cookie.?policy|data.?protection|compliance|gdpr|disclaimer|agreement|policies|copyright|intellectual.?property|term.?condition|cgv|condition`, "Legal and Terms"),
	rule(`login|signin|account.?login|register|signup|create.?account|admin|auth|dashboard|panel`, "Login and Registration"),
	rule(`donate|donation|give`, "Donation"),
	rule(`pricing|plans|rates|price`, "Pricing"),
	rule(`sitemap|navigation`, "Sitemap"),
	rule(`resource|download|document|doc|forms`, "Resources"),
	rule(`media|press|news|updates|announcement|newsletter`, "Media and Press"),
	rule(`support|helpdesk|customer.?service`, "Help and Support"),
	rule(`feedback|success.?stories`, "Customer Feedback"),
	rule(`partner|affiliate`, "Partners"),
	rule(`events|calendar`, "Events"),
	rule(`membership|subscribe`, "Membership"),
	rule(`booking|appointment|reservation|schedule`, "Booking and Reservations"),
	rule(`offer|promotion|deals`, "Special Offers"),
	rule(`^(`+strings.Join(regionCodes, "|")+`)$`, "Language and Region"),
	rule(`user.?guide|manual|tutorial`, "User Guide and Tutorials"),
	rule(`catering|restaurant`, "Catering and Restaurants"),
	rule(`research|studies|papers`, "Research and Studies"),
	rule(`education|training|course|workshop|certification|programs|learning|admission|student|academy`, "Education and Training-related"),
	rule(`podcast|insight|publication|content`, "Communication-related"),
	rule(`recruitment|join|hire|employees|workforce|talents|people`, "Human Resources and Recruitment-related"),
	rule(`customer|client|account|billing`, "Customers"),
	rule(`insurance|risk|policies|coverage|protection`, "Insurance and Risk-related"),
	rule(`order|purchase|sale|deliver|shipping|return|exchange|e-commerce|discount|refund`, "E-commerce and Sales-related"),
	rule(`user`, "User-related"),
}

// Categorize returns the label of the first rule matching url, or
// models.CategoryMiscellaneous. Any string is accepted.
func Categorize(url string) string {
	lower := strings.ToLower(url)
	for _, r := range rules {
		if r.Pattern.MatchString(lower) {
			return r.Label
		}
	}
	return models.CategoryMiscellaneous
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
