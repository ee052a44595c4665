package element

import (
	"github.com/youssefsiam38/adminui/callback"
	"github.com/youssefsiam38/adminui/internal/markdown"
)

// Status values carried by login and error elements.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Content property shared by container elements.
const contentKey = "content"

// Paragraph is a block of text.
func Paragraph(text string, props ...Prop) *Element {
	return New("Paragraph", append([]Prop{Attr("text", String(text))}, props...)...)
}

// Header is a title of the given level (1 is the largest).
func Header(title string, level int, props ...Prop) *Element {
	return New("Header", append([]Prop{
		Attr("title", String(title)),
		Attr("level", Int(level)),
	}, props...)...)
}

// Card groups content under an optional title.
func Card(title string, content []*Element, props ...Prop) *Element {
	return New("Card", append([]Prop{
		Attr("title", OptionalString(title)),
		Attr(contentKey, Elements(content)),
	}, props...)...)
}

// Divider is a horizontal rule with an optional caption.
func Divider(title string, props ...Prop) *Element {
	return New("Divider", append([]Prop{Attr("title", OptionalString(title))}, props...)...)
}

// Row lays its children out horizontally.
func Row(content ...*Element) *Element {
	return New("Row", Attr(contentKey, Elements(content)))
}

// Column is a Row child occupying size grid units.
func Column(size int, content ...*Element) *Element {
	return New("Column", Attr("size", Int(size)), Attr(contentKey, Elements(content)))
}

// Form collects its field values and posts them as the single argument of
// onSubmit.
func Form(onSubmit *callback.Callback, content ...*Element) *Element {
	return New("Form",
		Attr("on_submit", Action(onSubmit)),
		Attr(contentKey, Elements(content)),
	)
}

func field(typ, title, name string, props []Prop) *Element {
	return New(typ, append([]Prop{
		Attr("title", String(title)),
		Attr("name", String(name)),
		Attr("required", Bool(false)),
	}, props...)...)
}

// TextField is a single-line input bound to name in the enclosing form.
func TextField(title, name string, props ...Prop) *Element {
	return field("TextField", title, name, props)
}

// TextArea is a multi-line input.
func TextArea(title, name string, props ...Prop) *Element {
	return field("TextArea", title, name, props)
}

// Checkbox is a boolean input.
func Checkbox(title, name string, props ...Prop) *Element {
	return field("Checkbox", title, name, props)
}

// DatePicker is a date input.
func DatePicker(title, name string, props ...Prop) *Element {
	return field("DatePicker", title, name, props)
}

// SelectBox is a choice among options.
func SelectBox(title, name string, options []string, props ...Prop) *Element {
	return field("SelectBox", title, name, append([]Prop{Attr("data", Strings(options...))}, props...))
}

// Upload is a file input. The uploaded value can be resolved to a path with
// upload.Store.Location.
func Upload(title, name string, props ...Prop) *Element {
	return field("Upload", title, name, props)
}

// Required marks a form field as mandatory.
func Required() Prop {
	return Attr("required", Bool(true))
}

// Placeholder sets a form field's placeholder text.
func Placeholder(text string) Prop {
	return Attr("placeholder", String(text))
}

// FormActions holds the buttons at the bottom of a form.
func FormActions(content ...*Element) *Element {
	return New("FormActions", Attr(contentKey, Elements(content)))
}

// SubmitButton submits the enclosing form.
func SubmitButton(title string, props ...Prop) *Element {
	return New("SubmitButton", append([]Prop{Attr("title", String(title))}, props...)...)
}

// Button invokes onClick when pressed.
func Button(title string, onClick *callback.Callback, props ...Prop) *Element {
	return New("Button", append([]Prop{
		Attr("title", String(title)),
		Attr("on_click", Action(onClick)),
	}, props...)...)
}

// DataTable renders rows of data under the given columns.
func DataTable(title string, columns []Map, rows []Map, props ...Prop) *Element {
	cols := make(List, len(columns))
	for i, c := range columns {
		cols[i] = c
	}
	data := make(List, len(rows))
	for i, r := range rows {
		data[i] = r
	}
	return New("DataTable", append([]Prop{
		Attr("title", OptionalString(title)),
		Attr("columns", cols),
		Attr("data", data),
	}, props...)...)
}

// Image shows the image at url.
func Image(url string, props ...Prop) *Element {
	return New("Image", append([]Prop{Attr("url", String(url))}, props...)...)
}

// Markdown renders src on the server into sanitized HTML.
func Markdown(src string, props ...Prop) (*Element, error) {
	html, err := markdown.Render(src)
	if err != nil {
		return nil, err
	}
	return New("Markdown", append([]Prop{Attr("html", String(html))}, props...)...), nil
}

// MustMarkdown is like Markdown but panics on error.
func MustMarkdown(src string, props ...Prop) *Element {
	e, err := Markdown(src, props...)
	if err != nil {
		panic(err)
	}
	return e
}

// Notification kinds.
const (
	NotificationSuccess = "success"
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification pops up a message, typically as a callback result.
func Notification(kind, title, text string) *Element {
	return New("Notification",
		Attr("notification_type", String(kind)),
		Attr("title", String(title)),
		Attr("text", String(text)),
	)
}

// NavigateTo makes the frontend navigate to url, typically as a callback
// result.
func NavigateTo(url string) *Element {
	return New("NavigateTo", Attr("url", String(url)))
}

// Error is the uniform failure element. errorType is a machine-readable,
// HTTP-like status code such as "404".
func Error(title, message, errorType string) *Element {
	return New("Error",
		Attr("status", String(StatusError)),
		Attr("title", String(title)),
		Attr("message", String(message)),
		Attr("error_type", String(errorType)),
	)
}
