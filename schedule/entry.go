package schedule

// Kind discriminates the three entry shapes.
type Kind uint8

const (
	// Wildcard matches every value in the field's range.
	Wildcard Kind = iota
	// Point matches a single value (Begin).
	Point
	// Range matches every value from Begin through End inclusive.
	Range
)

// Entry is one comma-separated unit within a field. Step is a stride
// ("every Step-th value starting at Begin"); zero means unstepped.
// End is meaningful only when Kind is Range.
type Entry struct {
	Kind  Kind
	Begin int
	End   int
	Step  int
}

// Always is the bare wildcard entry. Fields absent from the input default
// to a sequence holding only Always. A stepped wildcard such as "*/2" is
// not equal to Always and may be combined with other entries.
var Always = Entry{Kind: Wildcard}

// Sequence is a non-empty ordered list of entries for one field. Order is
// preserved from the input but carries no semantic weight. A sequence with
// more than one entry never contains Always.
type Sequence []Entry

// Date is the date section of an expression.
type Date struct {
	Years  Sequence
	Months Sequence
	Days   Sequence
}

// Time is the time section. Millis defaults to a single 0 when the
// ".fff" suffix is absent.
type Time struct {
	Hours   Sequence
	Minutes Sequence
	Seconds Sequence
	Millis  Sequence
}

// Format is a fully parsed schedule expression. Absent optional sections
// carry wildcard defaults, so every Format is complete.
type Format struct {
	Date      Date
	DayOfWeek Sequence
	Time      Time
}
