package leads

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/eliterealty/internal/catalog"
)

// Field indexes, in tab order.
const (
	FieldName = iota
	FieldEmail
	FieldPhone
	FieldMessage
	fieldCount
)

var fieldKeys = [fieldCount]string{"Name", "Email", "Phone", "Message"}

var placeholders = [fieldCount]string{
	"Full name",
	"Email address",
	"Phone number",
	"Message / preferred viewing time",
}

// Form is the lead modal's state: four inputs plus the listing the enquiry
// is about, if any. It is reset on submit and on cancel.
type Form struct {
	inputs  []textinput.Model
	focus   int
	listing *catalog.Listing
	errors  map[string]string
}

func NewForm() *Form {
	f := &Form{inputs: make([]textinput.Model, 0, fieldCount)}
	for i := 0; i < fieldCount; i++ {
		inp := textinput.New()
		inp.Prompt = ""
		inp.Placeholder = placeholders[i]
		inp.CharLimit = 120
		inp.Cursor.SetMode(cursor.CursorStatic)
		if i == FieldMessage {
			inp.CharLimit = 2000
		}
		f.inputs = append(f.inputs, inp)
	}
	f.inputs[0].Focus()
	return f
}

// Associate ties the form to a listing; nil clears the association.
func (f *Form) Associate(l *catalog.Listing) {
	if l == nil {
		f.listing = nil
		return
	}
	c := *l
	f.listing = &c
}

func (f *Form) Listing() (catalog.Listing, bool) {
	if f.listing == nil {
		return catalog.Listing{}, false
	}
	return *f.listing, true
}

// Title is the modal heading.
func (f *Form) Title() string {
	if f.listing != nil {
		return "Enquire: " + f.listing.Title
	}
	return "Schedule a Viewing"
}

// Context is the read-only "<location> - <type>" line, "" without a listing.
func (f *Form) Context() string {
	if f.listing == nil {
		return ""
	}
	return f.listing.Location + " - " + f.listing.Type
}

func (f *Form) Focused() int { return f.focus }

func (f *Form) OnLastField() bool { return f.focus == fieldCount-1 }

func (f *Form) Next() { f.move(1) }
func (f *Form) Prev() { f.move(-1) }

func (f *Form) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// SetValue sets one field directly.
func (f *Form) SetValue(field int, v string) {
	if field < 0 || field >= fieldCount {
		return
	}
	f.inputs[field].SetValue(v)
}

func (f *Form) Value(field int) string {
	if field < 0 || field >= fieldCount {
		return ""
	}
	return f.inputs[field].Value()
}

// Values snapshots the form as a draft.
func (f *Form) Values() Draft {
	d := Draft{
		Name:    f.inputs[FieldName].Value(),
		Email:   f.inputs[FieldEmail].Value(),
		Phone:   f.inputs[FieldPhone].Value(),
		Message: f.inputs[FieldMessage].Value(),
	}
	if f.listing != nil {
		id := f.listing.ID
		d.ListingID = &id
	}
	return d
}

// Reset empties every field, drops the listing and the errors.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
	f.listing = nil
	f.errors = nil
}

// ShowErrors attaches validation messages to their fields.
func (f *Form) ShowErrors(ve *ValidationError) {
	f.errors = map[string]string{}
	if ve == nil {
		return
	}
	for _, fe := range ve.Fields {
		f.errors[fe.Field] = fe.Message
	}
}

func (f *Form) Error(field int) string {
	if field < 0 || field >= fieldCount {
		return ""
	}
	return f.errors[fieldKeys[field]]
}

// Update forwards input to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// FormStyles colours the rendered form.
type FormStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Context lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
}

// View renders the form body for a modal of the given inner width.
func (f *Form) View(width int, st FormStyles) string {
	if width < 20 {
		width = 20
	}
	lines := []string{st.Title.Render(f.Title()), ""}
	for i := range f.inputs {
		f.inputs[i].Width = width - 4
		label := st.Label
		marker := "  "
		if i == f.focus {
			label = st.Focused
			marker = "› "
		}
		lines = append(lines, label.Render(marker+placeholders[i]))
		lines = append(lines, "  "+f.inputs[i].View())
		if msg := f.Error(i); msg != "" {
			lines = append(lines, st.Error.Render("  "+msg))
		}
		if i == FieldPhone && f.listing != nil {
			lines = append(lines, st.Context.Render("  "+f.Context()))
		}
	}
	lines = append(lines, "", st.Hint.Render("tab next  ctrl+s send enquiry  esc cancel"))
	return strings.Join(lines, "\n")
}
