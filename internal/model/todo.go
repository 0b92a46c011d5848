package model

// TodoRecord is one entry of the persisted todo list.
// Identity is positional; there is no stable id.
type TodoRecord struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}
