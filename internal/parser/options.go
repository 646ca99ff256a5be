package parser

import (
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"

	"github.com/PuerkitoBio/goquery"
)

// sentinelValue marks the "[Select a show]" style placeholder of every selector.
const sentinelValue = "0"

// option is one raw <option> entry.
type option struct {
	value    string
	hasValue bool
	text     string
}

func (o option) isSentinel() bool {
	return o.hasValue && strings.TrimSpace(o.value) == sentinelValue
}

// selectOptions returns the options of the <select> carrying the given id.
// A missing selector means the page changed shape.
func selectOptions(doc *goquery.Document, page, id string) ([]option, error) {
	sel := doc.Find("#" + id).First()
	if sel.Length() == 0 {
		return nil, apperrors.NewStructureError(page, "selector #%s not found", id)
	}

	var options []option
	sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		value, exists := o.Attr("value")
		options = append(options, option{
			value:    value,
			hasValue: exists,
			text:     strings.TrimSpace(o.Text()),
		})
	})
	return options, nil
}
