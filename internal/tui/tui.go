// Package tui is an interactive browser over a parsed symtab.DB, built with
// gdamore/tcell/v2 and rivo/tview. The teacher's pkg/hw/cpu/debugger package
// separates a Controller (command logic) from a DebuggerUI interface
// (presentation) so either can be swapped independently; this package keeps
// that split, but the teacher never actually wired tview/tcell to anything,
// so the widget layer below is this module's own, grounded only in tview's
// ordinary Flex+TreeView composition.
package tui

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/gitmesam/godbg/internal/cliformat"
	"github.com/gitmesam/godbg/internal/logging"
	"github.com/gitmesam/godbg/pkg/queryeval"
	"github.com/gitmesam/godbg/pkg/symtab"
)

// App is the top-level tview application: a tree of compilands/functions on
// the left, a detail pane and a query/log footer on the right, mirroring
// the teacher's "backend holds state, UI only renders" split — symtab.DB
// holds the state, App is the tview wiring.
type App struct {
	app  *tview.Application
	db   *symtab.DB
	ring *logging.Ring
	log  *slog.Logger
	eval *queryeval.Evaluator

	tree   *tview.TreeView
	detail *tview.TextView
	footer *tview.InputField
	logBox *tview.TextView
}

// NewApp builds the TUI over db. ring may be nil if log history display is
// not needed.
func NewApp(db *symtab.DB, ring *logging.Ring, log *slog.Logger) *App {
	a := &App{
		app:  tview.NewApplication(),
		db:   db,
		ring: ring,
		log:  log,
		eval: queryeval.NewEvaluator(db),
	}
	a.build()
	return a
}

func (a *App) build() {
	root := tview.NewTreeNode(cliformat.Header("godbg")).SetColor(tcell.ColorWhite)
	a.tree = tview.NewTreeView().SetRoot(root).SetCurrentNode(root)
	a.tree.SetTitle(" symbols ").SetBorder(true)

	for _, c := range a.db.Compilands {
		cNode := tview.NewTreeNode(c.Name).SetSelectable(true)
		root.AddChild(cNode)

		funcs := append([]*symtab.Function(nil), c.Functions...)
		sort.Slice(funcs, func(i, j int) bool { return funcs[i].Low < funcs[j].Low })
		for _, f := range funcs {
			fn := f
			fNode := tview.NewTreeNode(fmt.Sprintf("%s %s", Address(fn.Low), fn.Name)).SetSelectable(true)
			fNode.SetReference(fn)
			cNode.AddChild(fNode)
		}
		for _, g := range c.Globals {
			gv := g
			gNode := tview.NewTreeNode("var " + gv.Name).SetSelectable(true)
			gNode.SetReference(gv)
			cNode.AddChild(gNode)
		}
	}
	root.SetExpanded(true)

	a.detail = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	a.detail.SetTitle(" detail ").SetBorder(true)

	a.logBox = tview.NewTextView().SetDynamicColors(true)
	a.logBox.SetTitle(" log ").SetBorder(true)
	a.refreshLog()

	a.footer = tview.NewInputField().SetLabel("query> ")
	a.footer.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		expr := a.footer.GetText()
		a.footer.SetText("")
		value, err := a.eval.Eval(expr)
		if err != nil {
			a.detail.SetText(cliformat.Error("query error: %s", err))
			return
		}
		a.detail.SetText(fmt.Sprintf("%s = %s", expr, Address(value)))
	})

	a.tree.SetSelectedFunc(func(node *tview.TreeNode) {
		ref := node.GetReference()
		switch v := ref.(type) {
		case *symtab.Function:
			a.showFunction(v)
		case *symtab.Variable:
			a.detail.SetText(cliformat.Variable(v))
		}
	})

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.detail, 0, 3, false).
		AddItem(a.logBox, 0, 1, false).
		AddItem(a.footer, 1, 0, true)

	root2 := tview.NewFlex().
		AddItem(a.tree, 0, 1, true).
		AddItem(right, 0, 2, false)

	a.app.SetRoot(root2, true).SetFocus(a.tree)
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlQ {
			a.app.Stop()
			return nil
		}
		if event.Rune() == '/' {
			a.app.SetFocus(a.footer)
			return nil
		}
		return event
	})
}

func (a *App) showFunction(f *symtab.Function) {
	text := cliformat.FunctionSummary(f) + "\n\n"
	for _, l := range f.Lines {
		text += fmt.Sprintf("%s +%#x line %d\n", Address(f.Low+l.Offset), l.Offset, l.Line)
	}
	a.detail.SetText(text)
}

func (a *App) refreshLog() {
	if a.ring == nil {
		return
	}
	var text string
	for _, rec := range a.ring.Records() {
		text += fmt.Sprintf("%s %s\n", rec.Level, rec.Message)
	}
	a.logBox.SetText(text)
}

// Address formats an address for tree/detail labels without the ANSI color
// codes cliformat.Address would emit, since tview uses its own color tags.
func Address(addr uint64) string {
	return fmt.Sprintf("0x%08x", addr)
}

// Run starts the tview event loop; it blocks until the user quits.
func (a *App) Run() error {
	return a.app.Run()
}
