package readability_test

import (
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page wraps body in a minimal document titled title.
func page(title, body string) string {
	return "<!DOCTYPE html>\n<html>\n<head><title>" + title + "</title></head>\n<body>\n" + body + "\n</body>\n</html>"
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	const announcement = `<p>The office moves to the fifth floor next month and every desk needs to be packed by the facilities deadline.</p>`

	tests := []struct {
		name       string
		html       string
		sourceURL  string
		title      string
		contains   []string
		notContain []string
	}{
		{
			name:  "uses the document title",
			html:  page("Office Move", `<article>`+announcement+`</article>`),
			title: "Office Move",
		},
		{
			name:       "drops site navigation",
			html:       page("Office Move", `<nav><a href="/">Intranet Home</a><a href="/people">People Directory</a></nav><article>`+announcement+`</article>`),
			contains:   []string{"fifth floor"},
			notContain: []string{"Intranet Home", "People Directory"},
		},
		{
			name:       "drops the footer",
			html:       page("Office Move", `<article>`+announcement+`</article><footer><p>Facilities team, building B</p></footer>`),
			notContain: []string{"Facilities team, building B"},
		},
		{
			name:       "drops the sidebar",
			html:       page("Office Move", `<aside class="sidebar"><p>Upcoming birthdays this week</p></aside><article>`+announcement+`</article>`),
			notContain: []string{"Upcoming birthdays"},
		},
		{
			name: "keeps headings below the title",
			html: page("Office Move", `<article>
<h1>Office Move</h1>
<p>Everything you need to know about the move.</p>
<h2>Before Moving Day</h2>
<p>Label your boxes with your new desk number.</p>
</article>`),
			contains: []string{"Before Moving Day", "<h2"},
		},
		{
			name: "keeps action lists",
			html: page("Office Move", `<article>
<p>Before you leave on Friday:</p>
<ul>
<li>Pack your monitor</li>
<li>Return your locker key</li>
</ul>
</article>`),
			contains: []string{"<ul", "<li", "Return your locker key"},
		},
		{
			name: "keeps tables",
			html: page("Office Move", `<article>
<p>Moving schedule by team:</p>
<table>
<tr><th>Team</th><th>Day</th></tr>
<tr><td>Finance</td><td>Monday</td></tr>
</table>
</article>`),
			contains: []string{"<table", "Finance"},
		},
		{
			name:     "keeps links",
			html:     page("Office Move", `<article><p>See <a href="https://example.com/floorplan">the floor plan</a> for your new seat.</p></article>`),
			contains: []string{"<a", "https://example.com/floorplan"},
		},
		{
			name: "resolves relative links against the source URL",
			html: page("Launch Plan", `<article>
<h1>Launch Plan</h1>
<p>Review the budget by Friday. The full checklist lives in <a href="/docs/checklist">the launch checklist</a>, which every team lead should read before the kickoff meeting next week.</p>
</article>`),
			sourceURL: "https://example.com/plans/launch",
			contains:  []string{`href="https://example.com/docs/checklist"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := readability.NewExtractor().Extract(tt.html, tt.sourceURL)

			require.NoError(t, err)
			if tt.title != "" {
				assert.Equal(t, tt.title, result.Title)
			}
			for _, s := range tt.contains {
				assert.Contains(t, result.ContentHTML, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, result.ContentHTML, s)
			}
		})
	}
}

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "  \n\t"} {
		_, err := readability.NewExtractor().Extract(input, "")

		require.Error(t, err)
		assert.Equal(t, pagedigest.EINVALID, pagedigest.ErrorCode(err))
	}
}

func TestExtractor_RejectsPagesWithoutAnArticle(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract(`<html><body><script>track()</script></body></html>`, "")

	require.Error(t, err)
}
