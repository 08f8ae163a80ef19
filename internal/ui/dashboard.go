package ui

import (
	"fmt"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
)

// Actions wires the dashboard loop to the invoker and the template store.
// The cmd layer fills these in; the UI never talks to the network itself.
type Actions struct {
	// Read runs a read call and returns the display-formatted result.
	Read func(fn abi.Entry, draft template.MethodDraft) (string, error)
	// Write submits a transaction and returns a status line (hash, outcome).
	Write func(fn abi.Entry, draft template.MethodDraft) (string, error)
	// Save persists the current method drafts under a template name.
	Save func(name string, states map[string]template.MethodDraft) error
	// Templates lists saved templates for the load picker.
	Templates func() []template.Template
	// Use applies a loaded template's panel snapshot and returns the
	// browser rebuilt against it.
	Use func(t template.Template) (BrowserModel, error)
}

// RunDashboard drives the interactive loop: browse methods, fill forms,
// invoke, save/load templates. states carries the per-method drafts and is
// mutated in place so the caller can persist it afterwards.
func RunDashboard(browser BrowserModel, states map[string]template.MethodDraft, actions Actions) error {
	for {
		browser.Filled = filledKeys(states)
		browser.Selected = nil
		browser.Action = ""
		browser.Quitting = false

		result, err := RunBrowser(browser)
		if err != nil {
			return err
		}

		switch {
		case result.Quitting:
			return nil

		case result.Action == "save":
			name := promptLine("Template name")
			if name == "" {
				continue
			}
			if err := actions.Save(name, states); err != nil {
				fmt.Println(Err("save failed: " + err.Error()))
				pause()
				continue
			}
			fmt.Println(Success("saved template " + name))
			pause()

		case result.Action == "load":
			tmpl, ok := pickTemplate(actions.Templates())
			if !ok {
				continue
			}
			if actions.Use != nil {
				refreshed, err := actions.Use(tmpl)
				if err != nil {
					fmt.Println(Err("load failed: " + err.Error()))
					pause()
					continue
				}
				browser = refreshed
			}
			for key, draft := range tmpl.MethodStates {
				states[key] = draft
			}
			fmt.Println(Success("loaded template " + tmpl.Name))
			pause()

		case result.Selected != nil:
			fn := *result.Selected
			key := fn.MethodKey()
			draft, ok := states[key]
			if !ok {
				draft = template.NewMethodDraft()
			}

			draft, submitted, err := RunForm(fn, draft)
			if err != nil {
				return err
			}
			states[key] = draft
			if !submitted {
				continue
			}

			invoke := actions.Read
			verb := "calling"
			if fn.IsWriteFunction() {
				invoke = actions.Write
				verb = "sending"
			}
			if invoke == nil {
				fmt.Println(Warn("no wallet connected; write calls are disabled"))
				pause()
				continue
			}

			sp := NewSpinner(verb + " " + fn.Name + "…")
			sp.Start()
			out, err := invoke(fn, draft)
			sp.Stop()

			if err != nil {
				fmt.Println(Err(fn.Name + ": " + err.Error()))
			} else {
				fmt.Println(KeyValueBlock(fn.Name, [][2]string{{"result", out}}))
			}
			pause()
		}
	}
}

func filledKeys(states map[string]template.MethodDraft) map[string]bool {
	out := make(map[string]bool, len(states))
	for key, draft := range states {
		if len(draft.Values) > 0 || len(draft.TupleArrays) > 0 || draft.PayableValue != "" {
			out[key] = true
		}
	}
	return out
}

func pickTemplate(templates []template.Template) (template.Template, bool) {
	if len(templates) == 0 {
		fmt.Println(Warn("no saved templates"))
		pause()
		return template.Template{}, false
	}
	items := make([]PickerItem, len(templates))
	for i, t := range templates {
		items[i] = PickerItem{Label: t.Name, SubLabel: "updated " + t.UpdatedAt, Value: t.ID}
	}
	item, ok, err := PickItem("Load template", items)
	if err != nil || !ok {
		return template.Template{}, false
	}
	for _, t := range templates {
		if t.ID == item.Value {
			return t, true
		}
	}
	return template.Template{}, false
}
