package dto

const (
	ClipboardCopy = "copy"
	ClipboardCut  = "cut"
)

// ClipboardEntry marks one item as pending copy or cut. The server
// keeps at most one outstanding set per account and replaces it
// wholesale on every new copy/cut.
type ClipboardEntry struct {
	ItemID    uint   `json:"item_id"`
	ItemKind  string `json:"item_kind"`
	Operation string `json:"operation"`
}

type ClipboardResponse struct {
	Entries []ClipboardEntry `json:"entries"`
}

type PasteResponse struct {
	Item      Item   `json:"item"`
	Operation string `json:"operation"`
}
