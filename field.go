package filmcard

// Field names a single piece of information extracted from a title page.
type Field string

// Known fields. The set is fixed; Record refuses anything else.
const (
	FieldName        Field = "name"
	FieldTitle       Field = "title"
	FieldGenres      Field = "genres"
	FieldLanguage    Field = "language"
	FieldStars       Field = "stars"
	FieldPlotKeys    Field = "plot_keys"
	FieldRating      Field = "rating"
	FieldDescription Field = "description"
	FieldDirector    Field = "director"
	FieldCreator     Field = "creator"
	FieldRuntime     Field = "runtime"
	FieldURL         Field = "url"
	FieldYear        Field = "year"
)

// UnratedSentinel is the rating reported when no rating rule matches.
const UnratedSentinel = "-"

// Fields lists every known field in canonical order.
var Fields = []Field{
	FieldName,
	FieldTitle,
	FieldGenres,
	FieldLanguage,
	FieldStars,
	FieldPlotKeys,
	FieldRating,
	FieldDescription,
	FieldDirector,
	FieldCreator,
	FieldRuntime,
	FieldURL,
	FieldYear,
}

// ParseField returns the Field with the given name.
// Returns false if name is not a known field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Record holds the fields extracted and derived for one title page.
// A field is either present with a (possibly empty) value or absent.
// The zero value is an empty record ready to use.
type Record struct {
	values map[Field]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[Field]string)}
}

// Get returns the value of f and whether it is present.
func (r *Record) Get(f Field) (string, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Has reports whether f is present.
func (r *Record) Has(f Field) bool {
	_, ok := r.values[f]
	return ok
}

// Set stores v for f. Unknown fields are ignored.
func (r *Record) Set(f Field, v string) {
	if _, ok := ParseField(string(f)); !ok {
		return
	}
	if r.values == nil {
		r.values = make(map[Field]string)
	}
	r.values[f] = v
}

// Lookup returns the value of the field named name.
// Returns false for unknown names and absent fields alike.
func (r *Record) Lookup(name string) (string, bool) {
	f, ok := ParseField(name)
	if !ok {
		return "", false
	}
	return r.Get(f)
}

// Fields returns the present fields in canonical order.
func (r *Record) Fields() []Field {
	fields := make([]Field, 0, len(r.values))
	for _, f := range Fields {
		if r.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Len returns the number of present fields.
func (r *Record) Len() int {
	return len(r.values)
}
