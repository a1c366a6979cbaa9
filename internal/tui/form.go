// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
)

// formField binds one input to a Form field.
type formField struct {
	label messages.ID
	get   func(*viewmodel.Form) *string
}

var formFields = []formField{
	{messages.LabelTitle, func(f *viewmodel.Form) *string { return &f.Title }},
	{messages.LabelAuthors, func(f *viewmodel.Form) *string { return &f.Authors }},
	{messages.LabelJournal, func(f *viewmodel.Form) *string { return &f.Journal }},
	{messages.LabelYear, func(f *viewmodel.Form) *string { return &f.Year }},
	{messages.LabelVolume, func(f *viewmodel.Form) *string { return &f.Volume }},
	{messages.LabelIssue, func(f *viewmodel.Form) *string { return &f.Issue }},
	{messages.LabelPages, func(f *viewmodel.Form) *string { return &f.Pages }},
	{messages.LabelDOI, func(f *viewmodel.Form) *string { return &f.DOI }},
	{messages.LabelURL, func(f *viewmodel.Form) *string { return &f.URL }},
	{messages.LabelKeywords, func(f *viewmodel.Form) *string { return &f.Keywords }},
	{messages.LabelAbstract, func(f *viewmodel.Form) *string { return &f.Abstract }},
}

// formModel is the add/edit dialog: one text input per citation field.
type formModel struct {
	title  string
	inputs []textinput.Model
	focus  int
}

func newForm(title string, values viewmodel.Form) *formModel {
	f := &formModel{title: title, inputs: make([]textinput.Model, len(formFields))}
	for i, field := range formFields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 0
		in.SetValue(*field.get(&values))
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

// Values collects the raw input text.
func (f *formModel) Values() viewmodel.Form {
	var out viewmodel.Form
	for i, field := range formFields {
		*field.get(&out) = f.inputs[i].Value()
	}
	return out
}

func (f *formModel) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *formModel) view(loc *messages.Localizer, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(f.title))
	b.WriteString("\n\n")
	for i, field := range formFields {
		label := st.Label.Render(loc.T(field.label))
		if i == f.focus {
			label = st.Label.Inherit(st.Selected).Render(loc.T(field.label))
		}
		b.WriteString(label)
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Help.Render(helpLine(DefaultKeyMap.Next, DefaultKeyMap.Prev, DefaultKeyMap.Submit, DefaultKeyMap.Back)))
	return st.Dialog.Render(b.String())
}
