package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExperienceValid(t *testing.T) {
	assert.True(t, Experience{Title: "Engineer", CompanyName: "Acme"}.Valid())
	assert.False(t, Experience{Title: "Engineer"}.Valid(), "company_name is required")
	assert.False(t, Experience{CompanyName: "Acme"}.Valid(), "title is required")
	assert.False(t, Experience{}.Valid())
}

func TestEducationValid(t *testing.T) {
	assert.True(t, Education{SchoolName: "MIT"}.Valid())
	assert.False(t, Education{DegreeName: "BSc"}.Valid(), "school_name is required")
}

func TestSkillValid(t *testing.T) {
	assert.True(t, Skill{Name: "Go"}.Valid())
	assert.False(t, Skill{}.Valid())
}

func TestRecommendationValid(t *testing.T) {
	assert.True(t, Recommendation{RecommenderName: "Jane", RecommendationText: "Great colleague"}.Valid())
	assert.False(t, Recommendation{RecommenderName: "Jane"}.Valid(), "recommendation_text is required")
	assert.False(t, Recommendation{RecommendationText: "Great colleague"}.Valid(), "recommender_name is required")
}

func TestFeaturedItemValid(t *testing.T) {
	assert.True(t, FeaturedItem{Title: "My talk"}.Valid())
	assert.True(t, FeaturedItem{Description: "Conference talk"}.Valid())
	assert.False(t, FeaturedItem{Link: "https://example.com"}.Valid(), "needs a title or a description")
}
