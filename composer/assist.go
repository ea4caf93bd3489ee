package composer

import (
	"composer/block"
	"composer/common"
)

// Action is text assistant request offered for a block.
type Action string

const (
	ActionSummarizeAbove Action = "summarize_above"
	ActionContinueAbove  Action = "continue_above"
	ActionRewrite        Action = "rewrite_paragraph"
	ActionFormal         Action = "make_paragraph_formal"
	ActionShorter        Action = "make_paragraph_shorter"
	ActionExpand         Action = "expand_paragraph"
)

// Suggestion is assistant action with its availability for particular block.
type Suggestion struct {
	Action  Action
	Label   string
	Enabled bool
	Reason  string // why action is disabled
}

const (
	reasonNoOtherText = "Er is nog geen andere tekst beschikbaar"
	reasonNoContent   = "Voeg eerst tekst toe aan dit veld"
)

var actions = []struct {
	action     Action
	label      string
	needsOther bool
}{
	{ActionSummarizeAbove, "Vat bovenstaande tekst samen", true},
	{ActionContinueAbove, "Ga verder op bovenstaande tekst", true},
	{ActionRewrite, "Herschrijf deze tekst", false},
	{ActionFormal, "Maak deze tekst formeel", false},
	{ActionShorter, "Maak deze tekst korter", false},
	{ActionExpand, "Breid deze tekst uit", false},
}

// Suggestions returns assistant actions for top level block holding a
// paragraph (directly or as a pair side). Actions working on surrounding text
// require other blocks to have text, the rest require text in the block
// itself. Blocks without paragraphs get nothing.
func Suggestions(list []block.Block, id block.ID) []Suggestion {
	i := block.IndexOf(list, id)
	if i < 0 {
		return nil
	}

	var hasParagraph, hasContent bool
	for _, b := range list[i].Singles() {
		if b.Kind == common.KindParagraph {
			hasParagraph = true
			hasContent = hasContent || block.HasText(b)
		}
	}
	if !hasParagraph {
		return nil
	}
	hasOther := block.HasOtherText(list, id)

	out := make([]Suggestion, 0, len(actions))
	for _, a := range actions {
		sg := Suggestion{Action: a.action, Label: a.label, Enabled: true}
		switch {
		case a.needsOther && !hasOther:
			sg.Enabled, sg.Reason = false, reasonNoOtherText
		case !a.needsOther && !hasContent:
			sg.Enabled, sg.Reason = false, reasonNoContent
		}
		out = append(out, sg)
	}
	return out
}
