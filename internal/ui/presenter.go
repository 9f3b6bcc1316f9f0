package ui

import (
	"errors"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/posterity/internal/model"
)

// Presenter maps the core's events onto the widgets of one page. Widgets are
// bound after construction; events for unbound widgets are ignored.
type Presenter struct {
	buttons  map[model.Control]*widget.Button
	labels   map[model.Control]string
	shaken   map[model.Control]widget.Importance
	entries  map[string]*widget.Entry
	choices  map[string]*widget.CheckGroup
	invalid  map[string]string
	status   *widget.Label
	progress *widget.Label

	onNavigate func(path string)
	onReload   func()
}

// NewPresenter creates a presenter with no bound widgets
func NewPresenter() *Presenter {
	return &Presenter{
		buttons: make(map[model.Control]*widget.Button),
		labels:  make(map[model.Control]string),
		shaken:  make(map[model.Control]widget.Importance),
		entries: make(map[string]*widget.Entry),
		choices: make(map[string]*widget.CheckGroup),
		invalid: make(map[string]string),
	}
}

// BindButton binds the trigger of a control
func (p *Presenter) BindButton(c model.Control, b *widget.Button) {
	p.buttons[c] = b
}

// BindEntry binds a text field. The server's verdict is checked before the
// entry's own validator.
func (p *Presenter) BindEntry(field string, e *widget.Entry) {
	p.entries[field] = e
	own := e.Validator
	e.Validator = func(text string) error {
		if msg, ok := p.invalid[field]; ok {
			return errors.New(msg)
		}
		if own != nil {
			return own(text)
		}
		return nil
	}
}

// BindChoices binds a multi-valued field
func (p *Presenter) BindChoices(field string, g *widget.CheckGroup) {
	p.choices[field] = g
}

// BindStatus binds the status message label
func (p *Presenter) BindStatus(l *widget.Label) {
	p.status = l
}

// BindProgress binds the progress label
func (p *Presenter) BindProgress(l *widget.Label) {
	p.progress = l
}

// SetNavigationCallbacks sets what Navigate and Reload events do
func (p *Presenter) SetNavigationCallbacks(onNavigate func(path string), onReload func()) {
	p.onNavigate = onNavigate
	p.onReload = onReload
}

// ClearInvalid drops the server's verdict on a field once the user edits it.
// Must be called on the Fyne goroutine.
func (p *Presenter) ClearInvalid(field string) {
	if _, ok := p.invalid[field]; !ok {
		return
	}
	delete(p.invalid, field)
	if e := p.entries[field]; e != nil {
		e.Validate()
	}
}

// Notify implements model.Notifier. Events may arrive from any goroutine.
func (p *Presenter) Notify(ev model.Event) {
	fyne.Do(func() { p.apply(ev) })
}

// apply runs on the Fyne goroutine
func (p *Presenter) apply(ev model.Event) {
	switch ev.Kind {
	case model.EventControlDisabled:
		if b := p.buttons[ev.Control]; b != nil {
			if !b.Disabled() {
				p.labels[ev.Control] = b.Text
			}
			if imp, ok := p.shaken[ev.Control]; ok {
				b.Importance = imp
				delete(p.shaken, ev.Control)
			}
			b.Disable()
			if ev.Text != "" {
				b.SetText(ev.Text)
			}
		}
	case model.EventControlRestored:
		if b := p.buttons[ev.Control]; b != nil {
			text := ev.Text
			if text == "" {
				text = p.labels[ev.Control]
			}
			delete(p.labels, ev.Control)
			if text != "" {
				b.SetText(text)
			}
			b.Enable()
		}
	case model.EventControlHidden:
		if b := p.buttons[ev.Control]; b != nil {
			b.Hide()
		}
	case model.EventControlShown:
		if b := p.buttons[ev.Control]; b != nil {
			b.Show()
		}
	case model.EventControlShaken:
		if b := p.buttons[ev.Control]; b != nil {
			if _, ok := p.shaken[ev.Control]; !ok {
				p.shaken[ev.Control] = b.Importance
			}
			b.Importance = widget.WarningImportance
			b.Refresh()
			shake(b)
		}
	case model.EventMessageShown:
		if p.status != nil {
			p.status.Importance = importance(ev.Style)
			p.status.SetText(ev.Text)
		}
	case model.EventMessageCleared:
		if p.status != nil {
			p.status.Importance = widget.MediumImportance
			p.status.SetText("")
		}
	case model.EventFormReset:
		p.setText(model.FieldTitle, "")
		p.setText(model.FieldURL, "")
		p.setChoices(model.FieldContentWarning, model.DefaultChoice)
		p.setChoices(model.FieldCategory, model.DefaultChoice)
	case model.EventProgressShown:
		if p.progress != nil {
			p.progress.SetText(ev.Text)
		}
	case model.EventFieldSuggested:
		p.setText(ev.Field, ev.Text)
	case model.EventFieldInvalid:
		if ev.Text == "" {
			p.ClearInvalid(ev.Field)
			break
		}
		p.invalid[ev.Field] = ev.Text
		if e := p.entries[ev.Field]; e != nil {
			e.Validate()
		}
	case model.EventFieldValid:
		p.ClearInvalid(ev.Field)
	case model.EventNavigate:
		if p.onNavigate != nil {
			p.onNavigate(ev.Text)
		}
	case model.EventReload:
		if p.onReload != nil {
			p.onReload()
		}
	}
}

func (p *Presenter) setText(field, text string) {
	if e := p.entries[field]; e != nil {
		e.SetText(text)
	}
}

func (p *Presenter) setChoices(field string, selected ...string) {
	if g := p.choices[field]; g != nil {
		g.SetSelected(selected)
	}
}

// importance maps a message style onto a label importance
func importance(style model.MessageStyle) widget.Importance {
	switch style {
	case model.StyleSuccess:
		return widget.SuccessImportance
	case model.StylePrimary:
		return widget.HighImportance
	case model.StyleWarning:
		return widget.WarningImportance
	case model.StyleDanger:
		return widget.DangerImportance
	default:
		return widget.MediumImportance
	}
}

// shake wiggles a widget horizontally around its current position
func shake(obj fyne.CanvasObject) {
	origin := obj.Position()
	anim := fyne.NewAnimation(ShakeDuration, func(done float32) {
		offset := float32(math.Sin(float64(done)*2*math.Pi*ShakeCycles)) * ShakeAmplitude
		obj.Move(fyne.NewPos(origin.X+offset, origin.Y))
	})
	anim.Curve = fyne.AnimationLinear
	anim.Start()
}
