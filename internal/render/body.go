// body.go renders one line's body from the fused draw-event stream
// (events.go), handling tab expansion, Unicode/CJK width, zero-width
// joiners, and char wrapping.
package render

import "strings"

// lineState tracks the in-progress style mode and column width while
// consuming one line's draw-event stream.
type lineState struct {
	matched  bool
	inRegion bool
	width    int
	sawZWJ   bool
	curStyle TokenStyle
}

// body draws one line's content: tokens and match ranges fused into
// draw events, written through the Canvas with wrap/tab handling.
func (d *Drawer) body(tokens []Token, ranges []Range, matched bool, lnumWidth, gutterWidth int) error {
	c := d.canvas
	bodyWidth := d.opts.TermWidth - gutterWidth
	if bodyWidth < 1 {
		bodyWidth = 1
	}

	st := &lineState{matched: matched}

	if matched {
		if err := c.SetColor(slotBg, d.palette.MatchBg); err != nil {
			return err
		}
	}

	stream := newEventStream(tokens, ranges)
	if len(tokens) > 0 {
		if err := d.applyTokenStyle(stream.CurrentStyle(), st); err != nil {
			return err
		}
	}

	for {
		ev := stream.Next()
		switch ev.Kind {
		case EventDone:
			return d.endOfLine(st, bodyWidth)

		case EventRegionStart:
			st.inRegion = true
			if err := c.SetColor(slotFg, d.palette.RegionFg); err != nil {
				return err
			}
			if err := c.SetColor(slotBg, d.palette.RegionBg); err != nil {
				return err
			}

		case EventRegionEnd:
			st.inRegion = false
			if err := d.restoreTokenStyle(st); err != nil {
				return err
			}

		case EventTokenBoundary:
			if st.inRegion {
				continue
			}
			if err := d.applyTokenStyle(stream.CurrentStyle(), st); err != nil {
				return err
			}

		case EventChar:
			if err := d.drawChar(ev.Char, st, lnumWidth, bodyWidth); err != nil {
				return err
			}
		}
	}
}

// applyTokenStyle applies a token's pre-blended style: outside a region,
// paint the token background (only when the line isn't matched; matched
// lines keep match_bg throughout) then set fg, bold, and underline
// (italic tokens are drawn underlined).
func (d *Drawer) applyTokenStyle(style TokenStyle, st *lineState) error {
	st.curStyle = style
	if st.inRegion {
		return nil
	}
	c := d.canvas
	if !st.matched && c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, style.Fg); err != nil {
		return err
	}
	if style.Bold {
		if err := c.SetBold(); err != nil {
			return err
		}
	} else if err := c.UnsetBold(); err != nil {
		return err
	}
	if style.Italic {
		return c.SetUnderline()
	}
	return c.UnsetUnderline()
}

// restoreTokenStyle reapplies the matched-line invariant (match_bg stays
// painted throughout a matched line) plus the current token's style,
// used when leaving a region and after a wrap break.
func (d *Drawer) restoreTokenStyle(st *lineState) error {
	c := d.canvas
	if st.matched {
		if err := c.SetColor(slotBg, d.palette.MatchBg); err != nil {
			return err
		}
	} else if c.HasBackground() {
		if err := c.SetColor(slotBg, d.palette.Background); err != nil {
			return err
		}
	}
	if err := c.SetColor(slotFg, st.curStyle.Fg); err != nil {
		return err
	}
	if st.curStyle.Bold {
		if err := c.SetBold(); err != nil {
			return err
		}
	} else if err := c.UnsetBold(); err != nil {
		return err
	}
	if st.curStyle.Italic {
		return c.SetUnderline()
	}
	return c.UnsetUnderline()
}

// drawChar handles one EventChar: tab expansion, CJK/ZWJ-aware width,
// and wrapping before the char would overflow bodyWidth.
func (d *Drawer) drawChar(r rune, st *lineState, lnumWidth, bodyWidth int) error {
	if r == '\t' {
		if d.opts.TabWidth > 0 {
			return d.drawTab(st, lnumWidth, bodyWidth)
		}
		// tab_width == 0: pass the tab through as an ordinary character.
	}

	w := visualWidth(r)
	switch {
	case r == '\u200d': // zero-width joiner
		st.sawZWJ = true
		w = 0
	case st.sawZWJ:
		st.sawZWJ = false
		w = 0
	}

	if w > 0 && st.width+w > bodyWidth && d.opts.WrapChar {
		if err := d.wrap(st, lnumWidth); err != nil {
			return err
		}
	}

	if err := d.canvas.WriteString(string(r)); err != nil {
		return err
	}
	st.width += w
	return nil
}

// drawTab expands a tab to tab_width spaces, wrapping first (after
// padding the current line to bodyWidth) if the expansion would overflow.
func (d *Drawer) drawTab(st *lineState, lnumWidth, bodyWidth int) error {
	tw := d.opts.TabWidth
	if st.width+tw > bodyWidth && d.opts.WrapChar {
		if err := d.canvas.FillSpaces(st.width, bodyWidth); err != nil {
			return err
		}
		st.width = bodyWidth
		if err := d.wrap(st, lnumWidth); err != nil {
			return err
		}
	}
	if err := d.canvas.WriteString(strings.Repeat(" ", tw)); err != nil {
		return err
	}
	st.width += tw
	return nil
}

// wrap emits a wrap break: newline, continuation gutter, then restores
// whichever inline style (region / match / token) was active.
func (d *Drawer) wrap(st *lineState, lnumWidth int) error {
	c := d.canvas
	if err := c.DrawNewline(); err != nil {
		return err
	}
	if err := d.continuationGutter(lnumWidth); err != nil {
		return err
	}
	st.width = 0

	if st.inRegion {
		if err := c.SetColor(slotFg, d.palette.RegionFg); err != nil {
			return err
		}
		return c.SetColor(slotBg, d.palette.RegionBg)
	}
	return d.restoreTokenStyle(st)
}

// endOfLine reasserts match_bg for matched lines (so trailing padding is
// painted), fills to bodyWidth when backgrounds are active, and draws
// the terminating newline.
func (d *Drawer) endOfLine(st *lineState, bodyWidth int) error {
	c := d.canvas
	if st.matched {
		if err := c.SetColor(slotBg, d.palette.MatchBg); err != nil {
			return err
		}
	}
	switch {
	case c.HasBackground() || st.matched:
		if err := c.FillSpaces(st.width, bodyWidth); err != nil {
			return err
		}
	case st.width == 0:
		if err := c.SetColor(slotBg, NoColor); err != nil {
			return err
		}
	}
	return c.DrawNewline()
}
