package schedule

import "strconv"

// Parse parses one complete schedule expression:
//
//	[YYYY.MM.DD ][DOW ]HH:MM:SS[.fff]
//
// The whole input must be consumed; anything left over after the time
// section is an error. Every error returned is a *ParseError.
//
// The optional date and day-of-week prefixes backtrack while their shape
// is still in doubt: a missing digit or separator rewinds to the start of
// the section and the section is treated as absent. Once a section's full
// structure has matched (separators plus the trailing space), it is the
// only possible reading of that input, so a bounds or wildcard violation
// inside it is reported against its field instead of being absorbed.
func Parse(input string) (Format, error) {
	c := &cursor{in: input}
	f := Format{
		Date:      Date{Years: Sequence{Always}, Months: Sequence{Always}, Days: Sequence{Always}},
		DayOfWeek: Sequence{Always},
	}

	// Optional date prefix followed by a space.
	save := c.pos
	if rd, err := parseDateShape(c); err == nil && c.eat(' ') {
		d, verr := rd.validate()
		if verr != nil {
			return Format{}, verr
		}
		f.Date = d
	} else {
		c.pos = save
	}

	// Optional day-of-week prefix. A bare number before the first space
	// lands here rather than in the date branch, since a date needs two
	// '.' separators to match.
	save = c.pos
	if rs, err := parseSequenceAt(c); err == nil && c.eat(' ') {
		dow, verr := rs.validate(DayOfWeekField)
		if verr != nil {
			return Format{}, verr
		}
		f.DayOfWeek = dow
	} else {
		c.pos = save
	}

	// The time section is mandatory; failure here is final.
	t, err := parseTime(c)
	if err != nil {
		return Format{}, err
	}
	f.Time = t

	if !c.eof() {
		return Format{}, errAt(ErrTrailingInput, c.pos, "trailing input %q", c.in[c.pos:])
	}
	return f, nil
}

// rawSeq is a structurally parsed sequence awaiting validation, together
// with its start offset for error reporting.
type rawSeq struct {
	seq Sequence
	at  int
}

// validate applies the field's semantic checks: first the single-wildcard
// rule, then bounds. Both run only on a fully parsed sequence; partial
// sequences are never validated.
func (r rawSeq) validate(f Field) (Sequence, *ParseError) {
	if len(r.seq) > 1 {
		for _, e := range r.seq {
			if e == Always {
				return nil, errAt(ErrWildcardConflict, r.at,
					"%s: wildcard combined with other entries", f.Label)
			}
		}
	}
	if pe := checkBounds(r.seq, f); pe != nil {
		pe.Offset = r.at
		return nil, pe
	}
	return r.seq, nil
}

// rawDate is a structurally parsed date section awaiting validation.
type rawDate struct {
	years, months, days rawSeq
}

// validate runs field checks in input order, so when several fields are
// out of range the error names the leftmost one.
func (r rawDate) validate() (Date, *ParseError) {
	years, err := r.years.validate(YearField)
	if err != nil {
		return Date{}, err
	}
	months, err := r.months.validate(MonthField)
	if err != nil {
		return Date{}, err
	}
	days, err := r.days.validate(DayField)
	if err != nil {
		return Date{}, err
	}
	return Date{Years: years, Months: months, Days: days}, nil
}

// parseDateShape parses `years '.' months '.' days` structurally, leaving
// validation to the caller once the section has committed.
func parseDateShape(c *cursor) (rawDate, *ParseError) {
	years, err := parseSequenceAt(c)
	if err != nil {
		return rawDate{}, err
	}
	if !c.eat('.') {
		return rawDate{}, errAt(ErrLexical, c.pos, "expected '.' after %s", YearField.Label)
	}
	months, err := parseSequenceAt(c)
	if err != nil {
		return rawDate{}, err
	}
	if !c.eat('.') {
		return rawDate{}, errAt(ErrLexical, c.pos, "expected '.' after %s", MonthField.Label)
	}
	days, err := parseSequenceAt(c)
	if err != nil {
		return rawDate{}, err
	}
	return rawDate{years: years, months: months, days: days}, nil
}

// parseTime parses `hours ':' minutes ':' seconds ['.' millis]`. Once the
// '.' is consumed the millisecond sequence is mandatory.
func parseTime(c *cursor) (Time, *ParseError) {
	hours, err := parseFieldSequence(c, HourField)
	if err != nil {
		return Time{}, err
	}
	if !c.eat(':') {
		return Time{}, errAt(ErrLexical, c.pos, "expected ':' after %s", HourField.Label)
	}
	minutes, err := parseFieldSequence(c, MinuteField)
	if err != nil {
		return Time{}, err
	}
	if !c.eat(':') {
		return Time{}, errAt(ErrLexical, c.pos, "expected ':' after %s", MinuteField.Label)
	}
	seconds, err := parseFieldSequence(c, SecondField)
	if err != nil {
		return Time{}, err
	}
	millis := Sequence{{Kind: Point, Begin: 0}}
	if c.eat('.') {
		millis, err = parseFieldSequence(c, MillisecondField)
		if err != nil {
			return Time{}, err
		}
	}
	return Time{Hours: hours, Minutes: minutes, Seconds: seconds, Millis: millis}, nil
}

// parseFieldSequence parses a sequence and validates it in one step, for
// fields that never backtrack.
func parseFieldSequence(c *cursor, f Field) (Sequence, *ParseError) {
	rs, err := parseSequenceAt(c)
	if err != nil {
		return nil, err
	}
	return rs.validate(f)
}

// parseSequenceAt parses `wholeInterval (',' wholeInterval)* ','?`.
// A trailing comma is consumed and ignored.
func parseSequenceAt(c *cursor) (rawSeq, *ParseError) {
	start := c.pos
	first, err := parseWholeInterval(c)
	if err != nil {
		return rawSeq{}, err
	}
	seq := Sequence{first}
	for c.eat(',') {
		save := c.pos
		e, err := parseWholeInterval(c)
		if err != nil {
			c.pos = save
			break
		}
		seq = append(seq, e)
	}
	return rawSeq{seq: seq, at: start}, nil
}

// parseWholeInterval parses `('*' | N | N-M) ('/' S)?`. Once the '/' is
// consumed the step is mandatory and must be positive.
func parseWholeInterval(c *cursor) (Entry, *ParseError) {
	var e Entry
	if c.eat('*') {
		e = Entry{Kind: Wildcard}
	} else {
		begin, err := parseNumber(c)
		if err != nil {
			return Entry{}, err
		}
		e = Entry{Kind: Point, Begin: begin}
		if c.eat('-') {
			end, err := parseNumber(c)
			if err != nil {
				return Entry{}, err
			}
			e = Entry{Kind: Range, Begin: begin, End: end}
		}
	}
	if c.eat('/') {
		at := c.pos
		step, err := parseNumber(c)
		if err != nil {
			return Entry{}, err
		}
		if step < 1 {
			return Entry{}, errAt(ErrLexical, at, "step must be positive")
		}
		e.Step = step
	}
	return e, nil
}

// parseNumber parses an unsigned decimal run. A run that does not fit the
// native int is reported as an overflow, never wrapped.
func parseNumber(c *cursor) (int, *ParseError) {
	start := c.pos
	digits := c.digits()
	if digits == "" {
		return 0, errAt(ErrLexical, start, "expected digits")
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Atoi on an all-digit string can only fail on range.
		return 0, errAt(ErrOverflow, start, "number %q overflows int", digits)
	}
	return n, nil
}
