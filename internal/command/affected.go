package command

import "kanbo/internal/model"

// Affected reports which cards and tags a set of commands touches. The
// facade feeds the result to the search index so only changed entries are
// reindexed. Passing both a command and its inverse covers deletions, whose
// card ids live in the restore snapshot.
func Affected(cmds ...Command) (cards []model.ID, tags []model.ID) {
	cardSet := map[model.ID]bool{}
	tagSet := map[model.ID]bool{}
	for _, c := range cmds {
		switch v := c.(type) {
		case CreateCard, CreateBoard, CreateList, RenameBoard, RenameList, MoveList, CreateTag:
			// No indexed text is tied to an existing entity yet.
		case DeleteCard:
			cardSet[v.CardID] = true
		case restoreCard:
			cardSet[v.card.ID] = true
		case EditCardFields:
			cardSet[v.CardID] = true
		case MoveCard:
			cardSet[v.CardID] = true
		case AddTagToCard:
			cardSet[v.CardID] = true
		case RemoveTagFromCard:
			cardSet[v.CardID] = true
		case DeleteTag:
			tagSet[v.TagID] = true
		case restoreTag:
			tagSet[v.tag.ID] = true
			for cid := range v.cardIdx {
				cardSet[cid] = true
			}
		case restoreList:
			for _, card := range v.cards {
				cardSet[card.ID] = true
			}
		case restoreBoard:
			for _, card := range v.cards {
				cardSet[card.ID] = true
			}
		case DeleteList, DeleteBoard:
			// Covered by the paired restore snapshot.
		}
	}
	for id := range cardSet {
		cards = append(cards, id)
	}
	for id := range tagSet {
		tags = append(tags, id)
	}
	return cards, tags
}
