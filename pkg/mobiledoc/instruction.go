package mobiledoc

import (
	"strconv"

	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// Op identifies the structural event an Instruction records.
type Op uint8

// Instruction ops, one per node variant.
const (
	OpOpenPost Op = iota + 1
	OpOpenMarkupSection
	OpOpenListSection
	OpOpenListItem
	OpOpenImageSection
	OpOpenCardSection
	OpOpenTextRun
	OpOpenEmbedRun
	OpOpenStyle
)

// String returns the op name.
func (op Op) String() string {
	switch op {
	case OpOpenPost:
		return "openPost"
	case OpOpenMarkupSection:
		return "openMarkupSection"
	case OpOpenListSection:
		return "openListSection"
	case OpOpenListItem:
		return "openListItem"
	case OpOpenImageSection:
		return "openImageSection"
	case OpOpenCardSection:
		return "openCardSection"
	case OpOpenTextRun:
		return "openTextRun"
	case OpOpenEmbedRun:
		return "openEmbedRun"
	case OpOpenStyle:
		return "openStyle"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// Instruction is one record of the linearized tree. Only the fields relevant
// to Op are set:
//
//	OpOpenMarkupSection, OpOpenListSection  TagName
//	OpOpenImageSection                      Src
//	OpOpenCardSection                       Name, Payload
//	OpOpenTextRun                           ClosingCount, Value
//	OpOpenEmbedRun                          ClosingCount, Name, Value, Payload
//	OpOpenStyle                             TagName, Attributes
type Instruction struct {
	Op           Op
	TagName      string
	Src          string
	Name         string
	Value        string
	ClosingCount int
	Payload      post.Payload
	Attributes   []post.Pair
}
