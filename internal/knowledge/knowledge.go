// Package knowledge holds the built-in consultation categories and the
// reading list shown in the 吾知 hub. The content is static and ships
// with the binary.
package knowledge

import (
	"fmt"
	"strings"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
)

var (
	ErrCategoryNotFound = fmt.Errorf("knowledge category: %w", apperrors.ErrNotFound)
	ErrUnknownCategory  = fmt.Errorf("assistant category: %w", apperrors.ErrInvalid)
)

type Category struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Subtopics   []string `json:"subtopics"`
	Guides      []string `json:"guides"`
}

type Article struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Tag    string `json:"tag"`
	Cancer string `json:"cancer"`
}

// Categories returns a fresh copy so callers may modify the result.
func Categories() []Category {
	return []Category{
		{
			ID:          "body-image",
			Title:       "身体形象与自我认知",
			Description: "脱发管理、外观变化适应及社交自信重建。",
			Icon:        "user",
			Subtopics:   []string{"脱发管理", "外观变化", "社交自信", "整形修复"},
			Guides:      []string{"脱发全周期护理方案", "假发选择与自然佩戴指南", "疤痕修复与心态重建"},
		},
		{
			ID:          "work-life",
			Title:       "工作与经济管理",
			Description: "化疗期间的工作能力评估、雇主沟通与返工计划。",
			Icon:        "briefcase",
			Subtopics:   []string{"工作评估", "经济援助", "返工方案", "劳动权益"},
			Guides:      []string{"化疗阶段工作强度评估量表", "雇主沟通模板：如何申请弹性工时", "经济补助申领指南(2025版)"},
		},
		{
			ID:          "exercise",
			Title:       "运动与康复指导",
			Description: "按治疗阶段定制的运动方案与手术后功能恢复。",
			Icon:        "activity",
			Subtopics:   []string{"化疗运动", "术后康复", "长期计划", "水肿预防"},
			Guides:      []string{"术后手臂21天功能训练营", "淋巴水肿居家预防手册", "有氧训练：化疗周期的体力维持"},
		},
		{
			ID:          "intimacy",
			Title:       "两性关系与亲密生活",
			Description: "性生活安全指南、功能障碍应对及伴侣沟通技巧。",
			Icon:        "heart",
			Subtopics:   []string{"性生活安全", "功能障碍应对", "伴侣支持", "怀孕与避孕"},
			Guides:      []string{"化疗期间的性生活安全边界", "伴侣沟通：如何表达你的生理需求", "功能障碍：医学选项与心理调适"},
		},
	}
}

// Lookup finds a category by id.
func Lookup(id string) (Category, error) {
	for _, c := range Categories() {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
}

// Articles returns the reading list. A non-empty cancerType keeps the
// articles written for that cancer plus the general ones.
func Articles(cancerType string) []Article {
	all := []Article{
		{ID: 1, Title: "化疗期间如何保持职场沟通？", Tag: "工作管理", Cancer: constants.KnowledgeGeneralCancer},
		{ID: 2, Title: "乳腺癌术后手臂康复指南", Tag: "康复运动", Cancer: "乳腺癌"},
		{ID: 3, Title: "亲密关系：化疗药物会影响伴侣吗？", Tag: "两性生活", Cancer: constants.KnowledgeGeneralCancer},
		{ID: 4, Title: "天青色等烟雨，你的美不因脱发而逝", Tag: "心态建设", Cancer: constants.KnowledgeGeneralCancer},
	}
	cancerType = strings.TrimSpace(cancerType)
	if cancerType == "" {
		return all
	}
	out := make([]Article, 0, len(all))
	for _, a := range all {
		if a.Cancer == constants.KnowledgeGeneralCancer || a.Cancer == cancerType {
			out = append(out, a)
		}
	}
	return out
}

// AssistantCategory resolves the category an assistant consultation is
// scoped to. Empty means the general consultation; otherwise id must
// name a known category and its title is returned.
func AssistantCategory(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == constants.AssistantGeneralCategory {
		return constants.AssistantGeneralCategory, nil
	}
	c, err := Lookup(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	return c.Title, nil
}
