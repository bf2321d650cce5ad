package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"leavesmoke/internal/domain"
	"leavesmoke/internal/storage"
)

// ErrorViewer displays case failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays case failures in an interactive TUI
func (ev *ErrorViewer) View(output *domain.RunOutput) error {
	if len(output.Details) == 0 {
		color.Green("✓ No case failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i := range output.Details {
		list.AddItem(listItemText(output.Details[i], i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// request line on top, failure details below
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	footerView := tview.NewTextView().
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(" Case Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(output.Details), countUnresolved(output.Details)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(output.Details) {
			failure := output.Details[index]
			statsView.SetText(formatFailureStats(failure, index+1))
			detailsView.SetText(formatFailureDetails(failure)).ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(output.Details) {
					output.Details[index].Resolved = !output.Details[index].Resolved
					list.SetItemText(index, listItemText(output.Details[index], index), "")
					updateHeader()
					updateDetails()
					if err := ev.storage.SaveOutput(output); err != nil {
						footerView.SetText(fmt.Sprintf("[red]failed to save: %v[white]", err))
					} else {
						footerView.SetText("")
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true).
		AddItem(footerView, 1, 0, false)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func countUnresolved(failures []domain.CaseFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

// listItemText formats a list entry, dimmed once resolved
func listItemText(failure domain.CaseFailure, index int) string {
	name := failure.CaseName
	if name == "" {
		name = fmt.Sprintf("Case %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, tview.Escape(name))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(name))
}

// formatFailureDetails formats a case failure for display using tview color tags
func formatFailureDetails(failure domain.CaseFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Case: %s[white]\n\n", tview.Escape(failure.CaseName))

	switch failure.Outcome {
	case domain.OutcomeNetworkError:
		fmt.Fprintf(&b, "[cyan]Outcome:[white] network error\n")
	default:
		fmt.Fprintf(&b, "[cyan]Status:[white] %d\n", failure.Status)
	}
	if failure.TraceID != "" {
		fmt.Fprintf(&b, "[cyan]Trace ID:[white] %s\n", failure.TraceID)
	}
	fmt.Fprintf(&b, "\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}
	if failure.Body != "" && failure.Body != failure.Message {
		fmt.Fprintf(&b, "[yellow]Response Body:[white]\n%s\n\n", tview.Escape(failure.Body))
	}
	if failure.Curl != "" {
		fmt.Fprintf(&b, "[yellow]Reproduce:[white]\n%s\n", tview.Escape(failure.Curl))
	}

	return b.String()
}

// formatFailureStats formats the request line above the details
func formatFailureStats(failure domain.CaseFailure, number int) string {
	name := failure.CaseName
	if name == "" {
		name = fmt.Sprintf("Case %d", number)
	}
	return fmt.Sprintf("[cyan]request:[white] [yellow]%s %s[white] :: [yellow]%s[white]\n",
		failure.Method, tview.Escape(failure.Path), tview.Escape(name))
}
