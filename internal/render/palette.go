package render

import "github.com/san-kum/physlab/internal/viz"

var (
	Background = viz.Hex("#0f172a")
	GridLine   = viz.Hex("#1e293b")
	Axis       = viz.Hex("#475569")
	Text       = viz.Hex("#e2e8f0")
	Muted      = viz.Hex("#94a3b8")

	Blue   = viz.Hex("#3b82f6")
	Red    = viz.Hex("#ef4444")
	Green  = viz.Hex("#22c55e")
	Amber  = viz.Hex("#f59e0b")
	Purple = viz.Hex("#a855f7")
	Cyan   = viz.Hex("#06b6d4")
	Pink   = viz.Hex("#ec4899")
	Slate  = viz.Hex("#64748b")
)
