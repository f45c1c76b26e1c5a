package categories

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/classifier"
	"github.com/urfave/cli/v2"
)

// CategoriesAction prints the classifier rules in evaluation order, or the
// category of each URL given as an argument.
func CategoriesAction(c *cli.Context) error {
	if c.NArg() > 0 {
		for _, u := range c.Args().Slice() {
			fmt.Printf("%-40s %s\n", classifier.Categorize(u), u)
		}
		return nil
	}

	rules := classifier.Rules()
	fmt.Printf("%-4s %-42s %s\n", "#", "Category", "Pattern")
	fmt.Println(strings.Repeat("-", 100))
	for i, r := range rules {
		fmt.Printf("%-4d %-42s %s\n", i+1, r.Label, strings.TrimPrefix(r.Pattern.String(), "(?i)"))
	}
	fmt.Printf("\nFirst match wins. URLs matching no rule are %q.\n", models.CategoryMiscellaneous)
	return nil
}
