package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"qtb/internal/domain"
	"qtb/internal/storage"
)

// FailureViewer displays failed comparison cases in an interactive TUI.
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer.
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays the failed cases of a session side by side with their
// inputs and both compared outputs.
func (fv *FailureViewer) View(results *domain.SessionOutput) error {
	var failedIdx []int
	for i, c := range results.Cases {
		if !c.Passed() {
			failedIdx = append(failedIdx, i)
		}
	}
	if len(failedIdx) == 0 {
		color.Green("✓ No discrepancies found!")
		return nil
	}

	resolved := make(map[int]bool)
	for pos, idx := range failedIdx {
		if results.Cases[idx].Resolved {
			resolved[pos] = true
		}
	}

	saveResolved := func() error {
		for pos, idx := range failedIdx {
			results.Cases[idx].Resolved = resolved[pos]
		}
		return fv.storage.SaveOutput(results)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(pos int) string {
		c := results.Cases[failedIdx[pos]]
		if resolved[pos] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", pos+1, c.ID)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", pos+1, c.ID)
	}

	for pos := range failedIdx {
		list.AddItem(itemText(pos), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	countUnresolved := func() int {
		count := 0
		for pos := range failedIdx {
			if !resolved[pos] {
				count++
			}
		}
		return count
	}

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Discrepancies (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, Ctrl+C exit ",
			len(failedIdx), countUnresolved()))
	}
	updateHeader()

	updateDetails := func() {
		pos := list.GetCurrentItem()
		if pos >= 0 && pos < len(failedIdx) {
			detailsView.SetText(fv.formatCaseDetails(results.Cases[failedIdx[pos]]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				app.Stop()
				return nil
			case 'r', 'R':
				pos := list.GetCurrentItem()
				if pos >= 0 && pos < len(failedIdx) {
					resolved[pos] = !resolved[pos]
					list.SetItemText(pos, itemText(pos), "")
					updateHeader()
					updateDetails()
					_ = saveResolved()
				}
				return nil
			}
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatCaseDetails formats one failed case using tview color tags.
func (fv *FailureViewer) formatCaseDetails(c domain.CaseResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n", c.ID)
	fmt.Fprintf(&b, "[cyan]%s[white]\n\n", c.Description)

	if len(c.Inputs) > 0 {
		fmt.Fprintf(&b, "[yellow]Inputs:[white]\n")
		for _, input := range c.Inputs {
			fmt.Fprintf(&b, "  %s: %s\n", input.Name, input.Value)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "[yellow]C++ reference:[white]\n%s\n\n", orPlaceholder(c.ReferenceOutput))
	fmt.Fprintf(&b, "[yellow]Mojo candidate:[white]\n%s\n\n", orPlaceholder(c.CandidateOutput))

	if c.Reason != "" {
		fmt.Fprintf(&b, "[yellow]Reason:[white] %s\n", c.Reason)
	}
	if c.Diff != "" {
		fmt.Fprintf(&b, "[red]Diff:[white] %s\n", c.Diff)
	}

	return b.String()
}

func orPlaceholder(output string) string {
	if output == "" {
		return "[gray](no output captured)[white]"
	}
	return output
}
