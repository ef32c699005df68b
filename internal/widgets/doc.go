// Package widgets contains the focusable form widgets, the focus controller
// that routes keys between them, the selectable list cursor model and the
// lipgloss paint helpers menus use to lay out a frame.
//
// Widgets render to strings; they never touch the terminal.
package widgets
