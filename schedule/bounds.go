package schedule

// Field names one schedule component and its permitted value range.
type Field struct {
	Label string
	Min   int
	Max   int
}

// Bounds for every field. Day 32 is a sentinel meaning "last day of the
// month"; the parser admits it, interpreting it is the trigger engine's
// responsibility. Day-of-week 0 is Sunday.
var (
	YearField        = Field{Label: "year", Min: 2000, Max: 2100}
	MonthField       = Field{Label: "month", Min: 1, Max: 12}
	DayField         = Field{Label: "day", Min: 1, Max: 32}
	DayOfWeekField   = Field{Label: "day-of-week", Min: 0, Max: 6}
	HourField        = Field{Label: "hour", Min: 0, Max: 23}
	MinuteField      = Field{Label: "minute", Min: 0, Max: 59}
	SecondField      = Field{Label: "second", Min: 0, Max: 59}
	MillisecondField = Field{Label: "millisecond", Min: 0, Max: 999}
)

// CheckBounds validates every entry of seq against f. Wildcard entries are
// exempt: they stand for the whole legal range. For a point entry the
// effective end is its begin. The check stops at the first offender.
func CheckBounds(seq Sequence, f Field) error {
	if pe := checkBounds(seq, f); pe != nil {
		return pe
	}
	return nil
}

func checkBounds(seq Sequence, f Field) *ParseError {
	for _, e := range seq {
		if e.Kind == Wildcard {
			continue
		}
		begin := e.Begin
		end := begin
		if e.Kind == Range {
			end = e.End
		}
		if begin < f.Min || begin > f.Max || end < begin || end > f.Max {
			return errAt(ErrBounds, 0, "%s (%d, %d) out of bounds (%d, %d)",
				f.Label, begin, end, f.Min, f.Max)
		}
	}
	return nil
}
