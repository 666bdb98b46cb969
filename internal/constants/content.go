package constants

const (
	// Profile defaults applied at first sign-in
	DefaultProfileName              = "小青友"
	DefaultProfileAge               = 35
	DefaultProfileCancerType        = "乳腺癌"
	DefaultProfileTreatmentType     = "化疗"
	DefaultProfileTreatmentStart    = "2024-11-20"
	DefaultProfileCurrentCycle      = 2
	DefaultProfilePartnerStatus     = "已婚"
	DefaultProfileFertilityConcerns = true

	// Nutrition status choices offered by the profile form
	NutritionGood = "良好"
	NutritionFair = "中等"
	NutritionPoor = "较差"

	// Feed
	DefaultCoverEmoji = "🌿"
	DefaultAuthor     = "我"
	FeedFilterAll     = "all"

	// Share categories
	CategoryFood    = "美食"
	CategoryScenery = "美景"
	CategoryThings  = "美物"
	CategoryEssay   = "美文"

	// Assistant context window
	AssistantContextMessages = 3
	AssistantGeneralCategory = "general"

	// Articles tagged with this cancer type apply to everyone
	KnowledgeGeneralCancer = "通用"
)

// DefaultDraftTags are the tags pre-filled in the share editor
var DefaultDraftTags = []string{"打卡", "能量"}
