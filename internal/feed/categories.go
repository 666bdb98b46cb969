package feed

import "github.com/julianstephens/qingka/internal/constants"

// Category is one entry of the share category bar.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Emoji string `json:"emoji"`
}

// Categories returns the filter choices in display order; "all" comes first.
func Categories() []Category {
	return []Category{
		{ID: constants.FeedFilterAll, Title: "全部", Emoji: "🌟"},
		{ID: constants.CategoryFood, Title: constants.CategoryFood, Emoji: "🥗"},
		{ID: constants.CategoryScenery, Title: constants.CategoryScenery, Emoji: "🖼️"},
		{ID: constants.CategoryThings, Title: constants.CategoryThings, Emoji: "🎁"},
		{ID: constants.CategoryEssay, Title: constants.CategoryEssay, Emoji: "✍️"},
	}
}
