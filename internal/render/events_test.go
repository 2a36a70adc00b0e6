package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectEvents(tokens []Token, ranges []Range) []Event {
	es := newEventStream(tokens, ranges)
	var out []Event
	for {
		ev := es.Next()
		out = append(out, ev)
		if ev.Kind == EventDone {
			return out
		}
	}
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestEventStreamPlainTokens(t *testing.T) {
	tokens := []Token{{Text: "ab"}, {Text: "c"}}
	events := collectEvents(tokens, nil)

	var kinds []EventKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	require.Equal(t, []EventKind{
		EventChar, EventChar, EventTokenBoundary, EventChar, EventTokenBoundary, EventDone,
	}, kinds)
	require.Equal(t, 'a', events[0].Char)
	require.Equal(t, 'c', events[3].Char)
}

func TestEventStreamRegionBoundaries(t *testing.T) {
	tokens := []Token{{Text: "hello world"}}
	events := collectEvents(tokens, []Range{{Start: 6, End: 11}})

	require.Equal(t, 1, countKind(events, EventRegionStart))
	require.Equal(t, 1, countKind(events, EventRegionEnd))

	// RegionStart fires after "hello " (6 chars) and before 'w'.
	idx := -1
	for i, ev := range events {
		if ev.Kind == EventRegionStart {
			idx = i
		}
	}
	require.Equal(t, EventChar, events[idx+1].Kind)
	require.Equal(t, 'w', events[idx+1].Char)
}

func TestEventStreamMergesAdjacentRegions(t *testing.T) {
	tokens := []Token{{Text: "abcdef"}}
	events := collectEvents(tokens, []Range{{Start: 0, End: 3}, {Start: 3, End: 6}})

	// Ranges sharing the boundary byte render as one contiguous region.
	require.Equal(t, 1, countKind(events, EventRegionStart))
	require.Equal(t, 1, countKind(events, EventRegionEnd))
}

func TestEventStreamSeparatedRegions(t *testing.T) {
	tokens := []Token{{Text: "abcdef"}}
	events := collectEvents(tokens, []Range{{Start: 0, End: 2}, {Start: 4, End: 6}})

	require.Equal(t, 2, countKind(events, EventRegionStart))
	require.Equal(t, 2, countKind(events, EventRegionEnd))
}

func TestEventStreamByteOffsetsAreUTF8(t *testing.T) {
	// "héllo": h=1 byte, é=2 bytes; a range of [0,3) covers exactly "hé".
	tokens := []Token{{Text: "héllo"}}
	events := collectEvents(tokens, []Range{{Start: 0, End: 3}})

	var inRegion bool
	var regionChars []rune
	for _, ev := range events {
		switch ev.Kind {
		case EventRegionStart:
			inRegion = true
		case EventRegionEnd:
			inRegion = false
		case EventChar:
			if inRegion {
				regionChars = append(regionChars, ev.Char)
			}
		}
	}
	require.Equal(t, []rune{'h', 'é'}, regionChars)
}

func TestEventStreamTokenBoundaryCarriesPreviousStyle(t *testing.T) {
	bold := TokenStyle{Bold: true}
	tokens := []Token{{Text: "a", Style: bold}, {Text: "b"}}
	events := collectEvents(tokens, nil)

	require.Equal(t, EventTokenBoundary, events[1].Kind)
	require.Equal(t, bold, events[1].Style)
}

func TestEventStreamSkipsEmptyTokens(t *testing.T) {
	tokens := []Token{{Text: ""}, {Text: "x"}}
	events := collectEvents(tokens, nil)
	require.Equal(t, EventChar, events[0].Kind)
	require.Equal(t, 'x', events[0].Char)
}

func TestFlattenMergesStyleRuns(t *testing.T) {
	styleA := TokenStyle{Fg: Opaque(1, 2, 3)}
	tokens := []Token{{Text: "foo", Style: styleA}, {Text: "bar", Style: styleA}}
	spans := Flatten(tokens, nil)

	require.Len(t, spans, 2) // token boundary still splits; styles preserved
	require.Equal(t, "foo", spans[0].Text)
	require.Equal(t, "bar", spans[1].Text)
	require.Equal(t, styleA, spans[0].Style)
}

func TestFlattenMarksRegionSpans(t *testing.T) {
	tokens := []Token{{Text: "abcdef"}}
	spans := Flatten(tokens, []Range{{Start: 2, End: 4}})

	require.Len(t, spans, 3)
	require.Equal(t, "ab", spans[0].Text)
	require.Equal(t, "cd", spans[1].Text)
	require.Equal(t, "ef", spans[2].Text)
	require.False(t, spans[0].InRegion)
	require.True(t, spans[1].InRegion)
	require.False(t, spans[2].InRegion)
}
