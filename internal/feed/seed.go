package feed

import (
	"time"

	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/models"
)

// SamplePosts returns the starter feed with timestamps relative to now.
func SamplePosts(now time.Time) []models.SocialPost {
	return []models.SocialPost{
		{
			ID:         "food_1",
			Author:     "苏苏的食光",
			Content:    "今天完成了第4次化疗，状态比预想的好！",
			Likes:      342,
			Favorites:  156,
			Tags:       []string{constants.CategoryFood},
			Timestamp:  now.Add(-30 * time.Minute),
			CoverEmoji: "🌿",
		},
		{
			ID:         "item_1",
			Author:     "气质青友",
			Content:    "新买的假发真的很自然，推荐给姐妹们。",
			Likes:      215,
			Favorites:  567,
			Tags:       []string{constants.CategoryThings},
			Timestamp:  now.Add(-2 * time.Hour),
			CoverEmoji: "🌿",
		},
		{
			ID:         "view_1",
			Author:     "自由的风",
			Content:    "回到公司第一天，同事们的关心很温暖。",
			Likes:      892,
			Favorites:  443,
			Tags:       []string{constants.CategoryScenery},
			Timestamp:  now.Add(-1 * time.Hour),
			CoverEmoji: "🌿",
		},
		{
			ID:         "essay_1",
			Author:     "听雨的人",
			Content:    "【美文】写给所有战友：关于那些细碎的勇敢。",
			Likes:      1205,
			Favorites:  890,
			Tags:       []string{constants.CategoryEssay},
			Timestamp:  now.Add(-24 * time.Hour),
			CoverEmoji: "📜",
		},
		{
			ID:         "food_2",
			Author:     "果果妈",
			Content:    "低糖版蓝莓慕斯，给康复中的自己一点甜。",
			Likes:      156,
			Favorites:  89,
			Tags:       []string{constants.CategoryFood},
			Timestamp:  now.Add(-96400 * time.Second),
			CoverEmoji: "🍰",
		},
	}
}
