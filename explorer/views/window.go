package views

import (
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// VisibleBlocks is the default size of the latest blocks window
const VisibleBlocks = 10

// BlockWindow keeps the most recent blocks, newest first. It is owned by a single
// poller and is not safe for concurrent use.
type BlockWindow struct {
	size   int
	blocks []*models.BlockResponse
}

func NewBlockWindow(size int) *BlockWindow {
	if size <= 0 {
		size = VisibleBlocks
	}
	return &BlockWindow{size: size}
}

// Missing lists the heights below latest that the window still needs, highest first
func (w *BlockWindow) Missing(latest int64) []int64 {
	have := w.heights()
	var missing []int64
	for h := latest - 1; h > latest-int64(w.size) && h > 0; h-- {
		if _, ok := have[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Apply merges the latest block and the fetched ones into the window. The window is
// rebuilt downward from the latest height so it never holds more than size blocks,
// never holds a height twice and always starts with the latest block.
func (w *BlockWindow) Apply(latest *models.BlockResponse, fetched []*models.BlockResponse) {
	if latest == nil {
		return
	}
	byHeight := make(map[int64]*models.BlockResponse, len(w.blocks)+len(fetched)+1)
	for _, b := range w.blocks {
		byHeight[b.Height()] = b
	}
	for _, b := range fetched {
		if b != nil {
			byHeight[b.Height()] = b
		}
	}
	top := latest.Height()
	byHeight[top] = latest

	blocks := make([]*models.BlockResponse, 0, w.size)
	for h := top; h > top-int64(w.size) && h > 0; h-- {
		if b, ok := byHeight[h]; ok {
			blocks = append(blocks, b)
		}
	}
	w.blocks = blocks
}

// Blocks returns the window, newest first
func (w *BlockWindow) Blocks() []*models.BlockResponse {
	return append([]*models.BlockResponse(nil), w.blocks...)
}

// Len returns the number of blocks held
func (w *BlockWindow) Len() int {
	return len(w.blocks)
}

func (w *BlockWindow) heights() map[int64]struct{} {
	out := make(map[int64]struct{}, len(w.blocks))
	for _, b := range w.blocks {
		out[b.Height()] = struct{}{}
	}
	return out
}
