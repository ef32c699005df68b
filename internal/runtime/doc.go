// Package runtime drives interactive menus.
//
// One menu is active at a time. Run initializes a menu, then renders it,
// waits for a key within the remaining tick budget, dispatches the key and
// advances timers once per tick until the menu quits. A menu opens a nested
// menu by calling Run from its own key handler; the caller is suspended until
// the nested menu quits, so the Go call stack is the navigation stack.
package runtime
