// events.go fuses a line's highlight tokens and match ranges into a
// single tagged event stream, so the drawer is one dispatch loop instead
// of nested control flow over tokens, characters, and ranges.
package render

import "strings"

// EventKind enumerates the draw-event stream's event types.
type EventKind int

const (
	EventChar EventKind = iota
	EventRegionStart
	EventRegionEnd
	EventTokenBoundary
	EventDone
)

// Event is one step of the fused draw-event stream.
type Event struct {
	Kind  EventKind
	Char  rune
	Style TokenStyle // valid for EventTokenBoundary: the style being left
}

// Range is a byte-offset [Start, End) match range within one line.
type Range struct {
	Start int
	End   int
}

// eventStream walks one line's tokens and match ranges, producing the
// fused event sequence. It tracks the byte offset into the untruncated
// line to decide region boundaries.
type eventStream struct {
	tokens    []Token
	ranges    []Range
	tokenIdx  int
	charIdx   int // rune index within tokens[tokenIdx].Text
	runes     []rune
	offset    int
	inRegion  bool
	done      bool
	curStyle  TokenStyle
}

func newEventStream(tokens []Token, ranges []Range) *eventStream {
	es := &eventStream{tokens: tokens, ranges: ranges}
	es.loadToken()
	return es
}

// CurrentStyle returns the style of the token the stream is currently
// positioned in (the one that owns the next EventChar, or the one just
// entered on an EventTokenBoundary). Consumers use this to apply the new
// token's style on a boundary, since the Event itself only carries the
// style being left.
func (es *eventStream) CurrentStyle() TokenStyle {
	return es.curStyle
}

func (es *eventStream) loadToken() {
	for es.tokenIdx < len(es.tokens) {
		es.runes = []rune(es.tokens[es.tokenIdx].Text)
		es.charIdx = 0
		if len(es.runes) > 0 {
			es.curStyle = es.tokens[es.tokenIdx].Style
			return
		}
		es.tokenIdx++
	}
}

// dropExpiredRanges discards ranges that end strictly before the current
// offset. A range ending exactly at the offset is kept: that boundary
// still has to produce its RegionEnd (or merge into an adjacent range).
func (es *eventStream) dropExpiredRanges() {
	for len(es.ranges) > 0 && es.ranges[0].End < es.offset {
		es.ranges = es.ranges[1:]
	}
}

// Next produces the next event in the fused stream.
func (es *eventStream) Next() Event {
	if es.done {
		return Event{Kind: EventDone}
	}

	es.dropExpiredRanges()

	if len(es.ranges) > 0 {
		r := es.ranges[0]
		if r.Start == es.offset && r.Start < r.End && !es.inRegion {
			es.inRegion = true
			return Event{Kind: EventRegionStart}
		}
		if r.End == es.offset && es.inRegion {
			// Suppress the boundary if the next range starts exactly here too
			// (adjacent regions are treated as one contiguous region).
			if len(es.ranges) > 1 && es.ranges[1].Start == es.offset {
				es.ranges = es.ranges[1:]
			} else {
				es.inRegion = false
				return Event{Kind: EventRegionEnd}
			}
		}
	}

	for es.tokenIdx < len(es.tokens) {
		if es.charIdx < len(es.runes) {
			ch := es.runes[es.charIdx]
			es.charIdx++
			es.offset += runeUTF8Len(ch)
			if es.charIdx >= len(es.runes) {
				// Token exhausted after this char; caller sees the char now,
				// the TokenBoundary event fires on the following Next call.
			}
			return Event{Kind: EventChar, Char: ch}
		}
		prevStyle := es.curStyle
		es.tokenIdx++
		es.loadToken()
		return Event{Kind: EventTokenBoundary, Style: prevStyle}
	}

	es.done = true
	return Event{Kind: EventDone}
}

// Span is a contiguous run of one rendered line in a single style, used
// by consumers that don't need Canvas/Drawer's full wrap/gutter
// machinery (the bat printer's reduced pipeline).
type Span struct {
	Text     string
	Style    TokenStyle
	InRegion bool
}

// Flatten collapses one line's fused draw-event stream into Spans: the
// characters of one token (or of one region) are collected into a single
// Span, so callers don't re-style character by character. Every token
// boundary outside a region starts a new Span, even between equal styles.
func Flatten(tokens []Token, ranges []Range) []Span {
	stream := newEventStream(tokens, ranges)

	var spans []Span
	var cur strings.Builder
	curStyle := stream.CurrentStyle()
	curRegion := false

	flush := func() {
		if cur.Len() > 0 {
			spans = append(spans, Span{Text: cur.String(), Style: curStyle, InRegion: curRegion})
			cur.Reset()
		}
	}

	for {
		ev := stream.Next()
		switch ev.Kind {
		case EventDone:
			flush()
			return spans
		case EventRegionStart:
			flush()
			curRegion = true
		case EventRegionEnd:
			flush()
			curRegion = false
			curStyle = stream.CurrentStyle()
		case EventTokenBoundary:
			if !curRegion {
				flush()
				curStyle = stream.CurrentStyle()
			}
		case EventChar:
			cur.WriteRune(ev.Char)
		}
	}
}

func runeUTF8Len(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
