package ui

// Action represents an operation triggered by a browse-mode keybinding.
type Action string

const (
	ActionNone       Action = ""
	ActionDown       Action = "down"
	ActionUp         Action = "up"
	ActionTop        Action = "top"
	ActionBottom     Action = "bottom"
	ActionNextPage   Action = "next_page"
	ActionPrevPage   Action = "prev_page"
	ActionPageSize   Action = "cycle_page_size"
	ActionNextCol    Action = "next_column"
	ActionPrevCol    Action = "prev_column"
	ActionSort       Action = "sort"
	ActionSearch     Action = "search"
	ActionFilter     Action = "filter"
	ActionClearCol   Action = "clear_column_filters"
	ActionExpr       Action = "expr"
	ActionClearExpr  Action = "clear_expr"
	ActionSelect     Action = "select"
	ActionRange      Action = "range_select"
	ActionToggle     Action = "toggle_select"
	ActionSelectPage Action = "select_page"
	ActionClearPage  Action = "deselect_page"
	ActionClearSel   Action = "clear_selection"
	ActionHideCol    Action = "hide_column"
	ActionHelp       Action = "help"
	ActionQuit       Action = "quit"
	ActionPendingG   Action = "pending_g" // Waiting for the second key of gg
)

// BrowseKeyBindings maps keys to actions while the table has focus.
// Text-entry modes (search, filter, expression) bypass this map.
var BrowseKeyBindings = map[string]Action{
	"j":         ActionDown,
	"down":      ActionDown,
	"k":         ActionUp,
	"up":        ActionUp,
	"g":         ActionPendingG,
	"G":         ActionBottom,
	"n":         ActionNextPage,
	"right":     ActionNextPage,
	"p":         ActionPrevPage,
	"left":      ActionPrevPage,
	"z":         ActionPageSize,
	"tab":       ActionNextCol,
	"shift+tab": ActionPrevCol,
	"s":         ActionSort,
	"/":         ActionSearch,
	"f":         ActionFilter,
	"F":         ActionClearCol,
	":":         ActionExpr,
	"E":         ActionClearExpr,
	"space":     ActionSelect,
	"v":         ActionRange,
	"x":         ActionToggle,
	"a":         ActionSelectPage,
	"A":         ActionClearPage,
	"c":         ActionClearSel,
	"H":         ActionHideCol,
	"?":         ActionHelp,
	"q":         ActionQuit,
	"ctrl+c":    ActionQuit,
}
