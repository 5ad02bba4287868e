package analyze_test

import (
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/analyze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(kind pagedigest.BlockKind, order int, text string) pagedigest.Segment {
	return pagedigest.Segment{Kind: kind, Order: order, Text: text}
}

func TestDetectTasks(t *testing.T) {
	t.Parallel()

	cfg := pagedigest.DefaultConfig()

	tests := []struct {
		name       string
		segment    pagedigest.Segment
		source     string
		confidence float64
	}{
		{"todo marker", seg(pagedigest.BlockParagraph, 0, "TODO: update the changelog"), pagedigest.SignalMarker, 0.9},
		{"fixme marker without colon", seg(pagedigest.BlockOther, 0, "fixme the flaky test"), pagedigest.SignalMarker, 0.9},
		{"action marker", seg(pagedigest.BlockParagraph, 0, "Action: call the vendor"), pagedigest.SignalMarker, 0.9},
		{"next step marker", seg(pagedigest.BlockListItem, 0, "Next step: send the draft by Monday"), pagedigest.SignalMarker, 0.9},
		{"imperative list item", seg(pagedigest.BlockListItem, 0, "Update the team wiki"), pagedigest.SignalImperativeList, 0.7},
		{"imperative text", seg(pagedigest.BlockParagraph, 0, "Contact support for access."), pagedigest.SignalImperativeText, 0.5},
		{"deadline beats imperative text", seg(pagedigest.BlockParagraph, 0, "Review the budget by Friday."), pagedigest.SignalDeadline, 0.6},
		{"imperative list beats deadline", seg(pagedigest.BlockListItem, 0, "Submit the report due tomorrow"), pagedigest.SignalImperativeList, 0.7},
		{"numeric date with verb", seg(pagedigest.BlockParagraph, 0, "The release will ship on 2024-06-01."), pagedigest.SignalDeadline, 0.6},
		{"multi-word deadline phrase", seg(pagedigest.BlockOther, 0, "Payments must arrive no later than noon"), pagedigest.SignalDeadline, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tasks := analyze.DetectTasks([]pagedigest.Segment{tt.segment}, nil, cfg)

			require.Len(t, tasks, 1)
			assert.Equal(t, tt.segment.Text, tasks[0].Text)
			assert.Equal(t, tt.source, tasks[0].Source)
			assert.InDelta(t, tt.confidence, tasks[0].Confidence, 1e-9)
			assert.Equal(t, pagedigest.TaskPending, tasks[0].Status)
			assert.Len(t, tasks[0].ID, 16)
		})
	}

	t.Run("ignores segments without signals", func(t *testing.T) {
		t.Parallel()

		segs := []pagedigest.Segment{
			seg(pagedigest.BlockParagraph, 0, "The weather was pleasant all week."),
			seg(pagedigest.BlockListItem, 1, "Budget numbers are pending"),
			seg(pagedigest.BlockParagraph, 2, "Todoist is a popular app."),
			seg(pagedigest.BlockParagraph, 3, "Friday afternoon picnic photos"),
		}

		assert.Empty(t, analyze.DetectTasks(segs, nil, cfg))
	})

	t.Run("ids are stable and depend on position", func(t *testing.T) {
		t.Parallel()

		a := analyze.DetectTasks([]pagedigest.Segment{seg(pagedigest.BlockListItem, 0, "Send the invite")}, nil, cfg)
		b := analyze.DetectTasks([]pagedigest.Segment{seg(pagedigest.BlockListItem, 0, "Send the invite")}, nil, cfg)
		c := analyze.DetectTasks([]pagedigest.Segment{seg(pagedigest.BlockListItem, 1, "Send the invite")}, nil, cfg)

		require.Len(t, a, 1)
		assert.Equal(t, a[0].ID, b[0].ID)
		assert.NotEqual(t, a[0].ID, c[0].ID)
	})

	t.Run("uses a custom lexicon", func(t *testing.T) {
		t.Parallel()

		lex := &pagedigest.Lexicon{ImperativeVerbs: []string{"Ship"}, Markers: []string{"NB:"}}
		segs := []pagedigest.Segment{
			seg(pagedigest.BlockListItem, 0, "Ship the build"),
			seg(pagedigest.BlockParagraph, 1, "nb: this is a marker"),
			seg(pagedigest.BlockListItem, 2, "Send the invite"),
		}

		tasks := analyze.DetectTasks(segs, lex, cfg)

		require.Len(t, tasks, 2)
		assert.Equal(t, pagedigest.SignalImperativeList, tasks[0].Source)
		assert.Equal(t, pagedigest.SignalMarker, tasks[1].Source)
	})

	t.Run("uses configured confidences", func(t *testing.T) {
		t.Parallel()

		custom := pagedigest.DefaultConfig()
		custom.ImperativeListConfidence = 0.8

		tasks := analyze.DetectTasks([]pagedigest.Segment{seg(pagedigest.BlockListItem, 0, "Send the invite")}, nil, custom)

		require.Len(t, tasks, 1)
		assert.InDelta(t, 0.8, tasks[0].Confidence, 1e-9)
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, analyze.ContentHash("<p>hi</p>"), analyze.ContentHash("<p>hi</p>"))
	assert.NotEqual(t, analyze.ContentHash("<p>hi</p>"), analyze.ContentHash("<p>ho</p>"))
	assert.Len(t, analyze.ContentHash(""), 16)
}
